package contracts

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, DataFormatVersion, info.DataFormat)
}

func TestVersionStrings(t *testing.T) {
	assert.Equal(t, "storeinsight v1.0.0", GetVersionString())

	full := GetFullVersionString()
	assert.True(t, strings.HasPrefix(full, "storeinsight v1.0.0 (built: "))
	assert.Contains(t, full, runtime.GOOS+"/"+runtime.GOARCH)
}
