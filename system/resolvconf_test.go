package system

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"testing"
)

func stringSliceToReader(data []string) io.Reader {
	combined := strings.Join(data, "\n")
	combinedBytes := []byte(combined)

	return bytes.NewReader(combinedBytes)
}

func TestParseResolvConf(t *testing.T) {
	resolvConf, err := newResolvConfFromReader(stringSliceToReader([]string{
		"# a comment line",
		"nameserver 127.0.0.53",
		"nameserver 9.9.9.9",
		"search lan home.arpa",
		"options ndots:2 rotate",
	}))
	if err != nil {
		t.Fatalf("failed to parse resolv.conf: %v", err)
	}

	expectedNameservers := []string{"127.0.0.53", "9.9.9.9"}
	if !slices.Equal(resolvConf.Nameservers, expectedNameservers) {
		t.Errorf("nameservers = %v, expected %v", resolvConf.Nameservers, expectedNameservers)
	}

	expectedSearch := []string{"lan", "home.arpa"}
	if !slices.Equal(resolvConf.Search, expectedSearch) {
		t.Errorf("search = %v, expected %v", resolvConf.Search, expectedSearch)
	}

	if resolvConf.Options["ndots"] != "2" {
		t.Errorf("ndots = %q, expected 2", resolvConf.Options["ndots"])
	}
}

func TestFirstNameserver(t *testing.T) {
	resolvConf, err := newResolvConfFromReader(stringSliceToReader([]string{
		"nameserver 127.0.0.53",
		"nameserver 9.9.9.9",
	}))
	if err != nil {
		t.Fatalf("failed to parse resolv.conf: %v", err)
	}

	if first := resolvConf.FirstNameserver(); first != "127.0.0.53" {
		t.Errorf("first nameserver = %q, expected 127.0.0.53", first)
	}

	empty, err := newResolvConfFromReader(stringSliceToReader([]string{"# nothing here"}))
	if err != nil {
		t.Fatalf("failed to parse empty resolv.conf: %v", err)
	}

	if first := empty.FirstNameserver(); first != "" {
		t.Errorf("first nameserver of empty conf = %q, expected empty", first)
	}
}
