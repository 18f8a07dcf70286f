package service

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// DefaultSeed returns the built-in reset data.
func DefaultSeed() domain.SeedData {
	seed, err := ParseSeed(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("service: embedded seed: %v", err))
	}
	return seed
}

// ParseSeed decodes and checks YAML seed data. Sample accounts must be
// complete and must not collide with each other or with the administrator.
func ParseSeed(b []byte) (domain.SeedData, error) {
	var seed domain.SeedData
	if err := yaml.Unmarshal(b, &seed); err != nil {
		return domain.SeedData{}, fmt.Errorf("decode seed: %w", err)
	}

	if strings.TrimSpace(seed.AdminEmail) == "" {
		return domain.SeedData{}, errors.New("seed: admin_email is required")
	}

	usernames := map[string]struct{}{store.FoldKey(domain.SystemAdminUsername): {}}
	emails := map[string]struct{}{store.FoldKey(seed.AdminEmail): {}}
	for i, acc := range seed.Samples {
		if acc.Username == "" || acc.Email == "" || acc.Password == "" {
			return domain.SeedData{}, fmt.Errorf("seed: sample %d is incomplete", i)
		}

		u, e := store.FoldKey(acc.Username), store.FoldKey(acc.Email)
		if _, dup := usernames[u]; dup {
			return domain.SeedData{}, fmt.Errorf("seed: duplicate username %q", acc.Username)
		}
		if _, dup := emails[e]; dup {
			return domain.SeedData{}, fmt.Errorf("seed: duplicate email %q", acc.Email)
		}
		usernames[u], emails[e] = struct{}{}, struct{}{}
	}

	return seed, nil
}
