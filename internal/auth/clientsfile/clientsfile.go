// Package clientsfile reads client definitions from a YAML document and
// watches it for changes.
//
//	clients:
//	  - id: reporting
//	    name: Reporting job
//	    secret: s3cr3t          # or secret_salt + secret_hash
//	    owner: user-123         # optional
//	    scopes: [tree:read]
package clientsfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/pkg/cryptox"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("clientsfile: invalid definition")

type document struct {
	Clients []definition `yaml:"clients"`
}

type definition struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Secret     string   `yaml:"secret"`
	SecretSalt string   `yaml:"secret_salt"`
	SecretHash string   `yaml:"secret_hash"`
	Owner      string   `yaml:"owner"`
	Scopes     []string `yaml:"scopes"`
}

// Load reads and parses the clients file at path.
func Load(path string) ([]domain.ClientDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("clientsfile: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a clients document. Unknown fields are rejected so typos
// surface at load time.
func Parse(data []byte) ([]domain.ClientDefinition, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("clientsfile: decode: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Clients))
	out := make([]domain.ClientDefinition, 0, len(doc.Clients))
	for i, d := range doc.Clients {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalid, i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalid, d.ID)
		}
		seen[d.ID] = struct{}{}

		def := domain.ClientDefinition{
			ID:     domain.ClientID(d.ID),
			Name:   d.Name,
			Owner:  domain.UserID(d.Owner),
			Scopes: domain.NewScopes(d.Scopes...),
		}
		if def.Name == "" {
			def.Name = d.ID
		}

		hasPlain := d.Secret != ""
		hasHashed := d.SecretSalt != "" || d.SecretHash != ""
		switch {
		case hasPlain && hasHashed:
			return nil, fmt.Errorf("%w: %q sets both secret and secret_hash", ErrInvalid, d.ID)
		case hasPlain:
			def.PlainSecret = d.Secret
		case d.SecretSalt != "" && d.SecretHash != "":
			def.Secret = cryptox.Password{Salt: d.SecretSalt, Hash: d.SecretHash}
		default:
			return nil, fmt.Errorf("%w: %q needs secret or secret_salt and secret_hash", ErrInvalid, d.ID)
		}

		out = append(out, def)
	}
	return out, nil
}
