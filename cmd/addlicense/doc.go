// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Addlicense adds a license header to source files.

Usage:

	addlicense [flags] <directory>

It recursively walks the directory and checks every file whose name ends
with one of the configured extensions. If the file does not contain the
license text anywhere, the text is prepended to it, followed by a blank
line. One line is printed to standard output for each checked file.

By default the license is the Apache 2.0 notice of LINE Plus Corporation
and the extensions are .dart, .swift and .kt. Both can be replaced with the
-config flag, pointing to a .txtar archive or a YAML file:

  - license.txt (txtar) or license (YAML): the license text.
  - extensions.json (txtar) or extensions (YAML): a list of file name
    suffixes.
  - exclusions.json (txtar) or exclusions (YAML): a list of path suffixes
    of files that are never changed.

The run stops at the first file that cannot be read, is not valid UTF-8 or
cannot be written. Files changed before that stay changed. Pass -keep-going
to report such files and continue with the rest.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/addlicense/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
