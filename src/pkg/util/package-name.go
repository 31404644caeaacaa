package util

import (
	"runtime"
	"strings"
)

/*
GetPackageName returns the name of the package the caller lives in.

Used in config log lines, e.g. "imagefetch" for donation-report/src/pkg/imagefetch.InitializeConfig.
*/
func GetPackageName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	caller := runtime.FuncForPC(pc)
	if caller == nil {
		return "unknown"
	}

	fullName := caller.Name()
	lastSlash := strings.LastIndex(fullName, "/")
	rest := fullName[lastSlash+1:]
	if dot := strings.Index(rest, "."); dot >= 0 {
		return rest[:dot]
	}
	return rest
}
