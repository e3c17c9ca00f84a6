package vswitch

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortsCommandPrintsParsedTopology(t *testing.T) {
	resetFlags()
	defer resetFlags()

	var out bytes.Buffer
	portsCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"ports", "eth0", "eth1[U:5]", "eth2[T:10,20]"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "eth0")
	assert.Contains(t, got, "untagged=5")
	assert.Contains(t, got, "tagged=[10 20]")
}

func TestPortsCommandRejectsBadSpec(t *testing.T) {
	resetFlags()
	defer resetFlags()

	var out bytes.Buffer
	portsCmd.SetOut(&out)
	portsCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"ports", "eth0[Z:1]"})

	err := rootCmd.Execute()
	assert.Error(t, err)
}
