package app

import "strings"

// AdProvider describes one ad network the UI may use.
type AdProvider struct {
	// ProviderName overrides the display name; empty means NetworkName.
	ProviderName string
	// NetworkName is the name of the underlying ad network.
	NetworkName string
	// CanShowOverVpn is set when the network serves ads while the tunnel is up.
	CanShowOverVpn bool
	// IncludeCountryCodes limits the provider to these countries; empty means all.
	IncludeCountryCodes []string
	// ExcludeCountryCodes always wins over IncludeCountryCodes.
	ExcludeCountryCodes []string
}

// Name returns ProviderName, falling back to NetworkName.
func (p AdProvider) Name() string {
	if p.ProviderName != "" {
		return p.ProviderName
	}
	return p.NetworkName
}

// Allows reports whether the provider may serve the given ISO country code.
// An empty code only passes providers without an include list.
func (p AdProvider) Allows(country string) bool {
	if containsFold(p.ExcludeCountryCodes, country) {
		return false
	}
	if len(p.IncludeCountryCodes) == 0 {
		return true
	}
	return containsFold(p.IncludeCountryCodes, country)
}

// AdProviderView is the JSON shape of an AdProvider.
type AdProviderView struct {
	Name                string   `json:"name"`
	NetworkName         string   `json:"networkName"`
	CanShowOverVpn      bool     `json:"canShowOverVpn"`
	IncludeCountryCodes []string `json:"includeCountryCodes"`
	ExcludeCountryCodes []string `json:"excludeCountryCodes"`
}

func (p AdProvider) view() AdProviderView {
	return AdProviderView{
		Name:                p.Name(),
		NetworkName:         p.NetworkName,
		CanShowOverVpn:      p.CanShowOverVpn,
		IncludeCountryCodes: nonNil(p.IncludeCountryCodes),
		ExcludeCountryCodes: nonNil(p.ExcludeCountryCodes),
	}
}

func containsFold(codes []string, code string) bool {
	if code == "" {
		return false
	}
	for _, c := range codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
