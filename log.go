package rocketsim

import (
	"os"

	kitlog "github.com/go-kit/log"
)

// LogInit returns a logfmt logger on stdout with the flight name as context.
func LogInit(name string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return kitlog.With(klog, "flight", name)
}
