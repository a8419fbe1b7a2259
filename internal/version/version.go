package version

import (
	"fmt"
	"io"
	"runtime"
)

// Version is set at build time with -ldflags "-X github.com/limaJavier/eligibility/internal/version.Version=..."
var Version = "dev"

func Fprint(w io.Writer) {
	fmt.Fprintf(w, "eligibility version %s\n", Version)
	fmt.Fprintf(w, "%s/%s\n", runtime.GOOS, runtime.GOARCH)
}
