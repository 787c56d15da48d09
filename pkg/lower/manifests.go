package lower

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// AnchorVersion is the anchor-lang dependency pinned into every
// generated Cargo.toml.
const AnchorVersion = "0.29.0"

type cargoManifest struct {
	Package      cargoPackage      `toml:"package"`
	Lib          cargoLib          `toml:"lib"`
	Features     cargoFeatures     `toml:"features"`
	Dependencies cargoDependencies `toml:"dependencies"`
}

type cargoPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

type cargoLib struct {
	CrateType []string `toml:"crate-type"`
	Name      string   `toml:"name"`
}

type cargoFeatures struct {
	NoEntrypoint []string `toml:"no-entrypoint"`
	CPI          []string `toml:"cpi"`
	Default      []string `toml:"default"`
}

type cargoDependencies struct {
	AnchorLang string `toml:"anchor-lang"`
}

type anchorManifest struct {
	Programs anchorPrograms `toml:"programs"`
	Registry anchorRegistry `toml:"registry"`
	Provider anchorProvider `toml:"provider"`
	Scripts  anchorScripts  `toml:"scripts"`
}

type anchorPrograms struct {
	Localnet map[string]string `toml:"localnet"`
}

type anchorRegistry struct {
	URL string `toml:"url"`
}

type anchorProvider struct {
	Cluster string `toml:"cluster"`
	Wallet  string `toml:"wallet"`
}

type anchorScripts struct {
	Test string `toml:"test"`
}

// cargoToml renders the package/build manifest: crate and library target
// named after the program, fixed dependency set.
func cargoToml(programName string) (string, error) {
	m := cargoManifest{
		Package: cargoPackage{
			Name:    programName,
			Version: "0.1.0",
			Edition: "2021",
		},
		Lib: cargoLib{
			CrateType: []string{"cdylib", "lib"},
			Name:      programName,
		},
		Features: cargoFeatures{
			NoEntrypoint: []string{},
			CPI:          []string{"no-entrypoint"},
			Default:      []string{},
		},
		Dependencies: cargoDependencies{AnchorLang: AnchorVersion},
	}
	return encodeTOML(m)
}

// anchorToml renders the deployment/network manifest: the localnet
// program-id mapping, registry and provider defaults, and the canned
// test invocation.
func anchorToml(programName string) (string, error) {
	m := anchorManifest{
		Programs: anchorPrograms{
			Localnet: map[string]string{programName: ProgramIDPlaceholder},
		},
		Registry: anchorRegistry{URL: "https://api.apr.dev"},
		Provider: anchorProvider{
			Cluster: "localnet",
			Wallet:  "~/.config/solana/id.json",
		},
		Scripts: anchorScripts{
			Test: "yarn run ts-mocha -p ./tsconfig.json -t 1000000 tests/**/*.ts",
		},
	}
	return encodeTOML(m)
}

func encodeTOML(v any) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	return buf.String(), nil
}
