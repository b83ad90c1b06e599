// Package registry holds the closed source and status enumerations for items.
// The ids are opaque strings carried over from the legacy frontend contract;
// an unknown id always resolves to "", never to an error, so callers decide
// how a miss is reported.
package registry

// SourceOption is one entry of the item source enumeration.
type SourceOption struct {
	SourceName string `json:"sourceName"`
	SourceID   string `json:"sourceId"`
}

// StatusOption is one entry of the item status enumeration.
type StatusOption struct {
	StatusName string `json:"statusName"`
	StatusID   string `json:"statusId"`
}

const (
	SourcePurchase = "Purchase"
	SourceDonation = "Donation"

	StatusWorking    = "Working"
	StatusRepairable = "Repairable"
	StatusNotWorking = "Not working"
)

// ItemSources lists the fixed acquisition sources in display order.
var ItemSources = []SourceOption{
	{SourceName: SourcePurchase, SourceID: "1357"},
	{SourceName: SourceDonation, SourceID: "2468"},
}

// ItemStatuses lists the fixed item statuses in display order.
var ItemStatuses = []StatusOption{
	{StatusName: StatusWorking, StatusID: "1234"},
	{StatusName: StatusRepairable, StatusID: "3456"},
	{StatusName: StatusNotWorking, StatusID: "5678"},
}

// SourceNameByID returns the source display name for an id, or "" when the id
// is not part of the enumeration.
func SourceNameByID(id string) string {
	for _, s := range ItemSources {
		if s.SourceID == id {
			return s.SourceName
		}
	}
	return ""
}

// StatusNameByID returns the status display name for an id, or "" when the id
// is not part of the enumeration.
func StatusNameByID(id string) string {
	for _, s := range ItemStatuses {
		if s.StatusID == id {
			return s.StatusName
		}
	}
	return ""
}
