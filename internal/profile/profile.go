// Package profile loads named (N, K, w) coder presets from a YAML file,
// so operators can invoke "erasurecore encode --profile backup-9-6"
// instead of repeating the three numbers on every call.
package profile

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/minio/erasurecore/internal/codeerr"
)

// Profile names one (N, K, W) coder configuration.
type Profile struct {
	Name string `yaml:"name"`
	N    int    `yaml:"n"`
	K    int    `yaml:"k"`
	W    int    `yaml:"w"`
}

// Set is an ordered collection of profiles, as loaded from a YAML
// document of the form:
//
//	profiles:
//	  - name: backup-9-6
//	    n: 9
//	    k: 6
//	    w: 8
type Set struct {
	Profiles []Profile `yaml:"profiles"`
}

// Load reads and parses a profile file from path.
func Load(path string) (*Set, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, codeerr.WrapIO("profile: read "+path, err)
	}
	var set Set
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, errors.Wrap(err, "profile: parse "+path)
	}
	return &set, nil
}

// Find returns the named profile, or ok=false if no profile by that name
// is present in the set.
func (s *Set) Find(name string) (Profile, bool) {
	for _, p := range s.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}
