package ir

import "github.com/sanity-io/litter"

var dumpOpts = litter.Options{
	StripPackageNames: true,
	HidePrivateFields: false,
	Compact:           false,
}

// Dump renders an IR tree as Go-literal text. Shared entities print once and
// are referenced by pointer name after that.
func Dump(n Node) string {
	return dumpOpts.Sdump(n)
}
