package system

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const DefaultResolvConfPath = "/etc/resolv.conf"

// ResolvConf holds the pieces of /etc/resolv.conf the native transport
// cares about: which nameservers the platform would use when no custom
// server is configured.
type ResolvConf struct {
	mu           sync.RWMutex
	Nameservers  []string
	Search       []string
	Options      map[string]string
	path         string
	lastModified time.Time
}

// Watch polls the backing file and reloads it when it changes, so a VPN
// or network switch mid-session is picked up without a restart.
func (r *ResolvConf) Watch() {
	go func() {
		for {
			fileStats, err := os.Stat(r.path)
			if err != nil {
				time.Sleep(5 * time.Second)
				continue
			}

			if fileStats.ModTime().After(r.lastModified) {
				newResolvConf, err := NewResolvConfFromPath(r.path)
				if err != nil {
					continue
				}

				r.mu.Lock()
				r.Nameservers = newResolvConf.Nameservers
				r.Search = newResolvConf.Search
				r.Options = newResolvConf.Options
				r.lastModified = newResolvConf.lastModified
				r.mu.Unlock()
			}

			time.Sleep(5 * time.Second)
		}
	}()
}

// FirstNameserver returns the first configured nameserver, or an empty
// string if the platform has none.
func (r *ResolvConf) FirstNameserver() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.Nameservers) < 1 {
		return ""
	}
	return r.Nameservers[0]
}

func newResolvConfFromReader(reader io.Reader) (*ResolvConf, error) {
	resolvConf := ResolvConf{
		Options: map[string]string{},
	}
	scanner := bufio.NewScanner(reader)

	for scanner.Scan() {
		words := strings.Fields(scanner.Text())

		if len(words) < 2 {
			continue
		}

		switch words[0] {
		case "nameserver":
			resolvConf.Nameservers = append(resolvConf.Nameservers, words[1])
		case "search":
			resolvConf.Search = append(resolvConf.Search, words[1:]...)
		case "options":
			for _, opt := range words[1:] {
				parts := strings.SplitN(opt, ":", 2)
				if len(parts) == 2 {
					resolvConf.Options[parts[0]] = parts[1]
				} else {
					resolvConf.Options[parts[0]] = ""
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &resolvConf, nil
}

// NewResolvConfFromPath reads and parses a resolv.conf style file.
func NewResolvConfFromPath(path string) (*ResolvConf, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	resolvConf, err := newResolvConfFromReader(file)
	if err != nil {
		return nil, err
	}

	fileStats, err := os.Stat(path)
	if err == nil {
		resolvConf.lastModified = fileStats.ModTime()
	}

	resolvConf.path = path

	return resolvConf, nil
}
