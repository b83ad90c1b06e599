package registry_test

import (
	"testing"

	"github.com/campuskit/assetdb/internal/registry"
)

func TestSourceNameByID(t *testing.T) {
	if got := registry.SourceNameByID("1357"); got != "Purchase" {
		t.Errorf("SourceNameByID(1357) = %q, want Purchase", got)
	}
	if got := registry.SourceNameByID("2468"); got != "Donation" {
		t.Errorf("SourceNameByID(2468) = %q, want Donation", got)
	}
	if got := registry.SourceNameByID("9999"); got != "" {
		t.Errorf("Unknown source id resolved to %q", got)
	}
	if got := registry.SourceNameByID(""); got != "" {
		t.Errorf("Empty source id resolved to %q", got)
	}
}

func TestStatusNameByID(t *testing.T) {
	cases := map[string]string{
		"1234": "Working",
		"3456": "Repairable",
		"5678": "Not working",
	}
	for id, want := range cases {
		if got := registry.StatusNameByID(id); got != want {
			t.Errorf("StatusNameByID(%s) = %q, want %q", id, got, want)
		}
	}
	if got := registry.StatusNameByID("1111"); got != "" {
		t.Errorf("Unknown status id resolved to %q", got)
	}
}

// The enumerations are part of the client contract; order matters.
func TestEnumerationOrder(t *testing.T) {
	if len(registry.ItemSources) != 2 || registry.ItemSources[0].SourceName != "Purchase" {
		t.Errorf("Sources out of contract: %+v", registry.ItemSources)
	}
	if len(registry.ItemStatuses) != 3 || registry.ItemStatuses[0].StatusName != "Working" {
		t.Errorf("Statuses out of contract: %+v", registry.ItemStatuses)
	}
}
