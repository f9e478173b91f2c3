// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports the name and build information of the running
// command.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"go.astrophena.name/addlicense/syncx"
)

// Info describes the build of the running binary.
type Info struct {
	Name      string // command name
	Module    string // main module path
	Version   string // main module version, "(devel)" for local builds
	Commit    string // VCS revision, if known
	Modified  bool   // whether the working tree had local changes
	GoVersion string
}

// String returns a human-readable multi-line description of i.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s", i.Commit)
		if i.Modified {
			sb.WriteString(", modified")
		}
		sb.WriteString(")")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "built with %s\n", i.GoVersion)
	return sb.String()
}

var info syncx.Lazy[Info]

// Version returns build information of the running binary.
func Version() Info {
	return info.Get(func() Info {
		i := Info{
			Name:      CmdName(),
			Version:   "(devel)",
			GoVersion: runtime.Version(),
		}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return i
		}
		i.Module = bi.Main.Path
		if bi.Main.Version != "" {
			i.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				i.Commit = s.Value
			case "vcs.modified":
				i.Modified = s.Value == "true"
			}
		}
		return i
	})
}

// CmdName returns the base name of the running executable, without the
// ".exe" suffix on Windows.
func CmdName() string {
	return strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
}
