package services

import (
	"fmt"
	"time"

	"github.com/gocarina/gocsv"
	"gorm.io/gorm"
)

// csvItemRecord is the column layout of the item export. Field order here is
// the column order in the file.
type csvItemRecord struct {
	SerialNumber    string  `csv:"Serial Number"`
	Name            string  `csv:"Name"`
	Description     string  `csv:"Description"`
	ModelOrMake     string  `csv:"Model/Make"`
	Category        string  `csv:"Category"`
	SubCategory     string  `csv:"Sub-category"`
	Floor           string  `csv:"Floor"`
	Room            string  `csv:"Room"`
	Status          string  `csv:"Status"`
	Source          string  `csv:"Source"`
	Cost            float64 `csv:"Cost"`
	AcquiredDate    string  `csv:"Acquired Date"`
	Remark          string  `csv:"Remark"`
	RegisteredBy    string  `csv:"Registered By"`
	RegisteredDate  string  `csv:"Registered Date"`
}

// ExportItemsCSV renders the filtered item listing as CSV bytes and suggests
// a timestamped filename.
func ExportItemsCSV(db *gorm.DB, f ItemFilter) ([]byte, string, error) {
	rows, err := ExportItems(db, f)
	if err != nil {
		return nil, "", err
	}

	records := make([]csvItemRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, csvItemRecord{
			SerialNumber:   r.ItemSerialNumber,
			Name:           r.ItemName,
			Description:    r.ItemDescription,
			ModelOrMake:    r.ItemModelNumberOrMake,
			Category:       r.CategoryName,
			SubCategory:    r.SubCategoryName,
			Floor:          r.FloorName,
			Room:           r.RoomName,
			Status:         r.ItemStatus,
			Source:         r.ItemSource,
			Cost:           r.ItemCost,
			AcquiredDate:   r.ItemAcquiredDate.Format("2006-01-02"),
			Remark:         r.ItemRemark,
			RegisteredBy:   r.CreatedByName,
			RegisteredDate: r.CreatedAt.Format("2006-01-02"),
		})
	}

	out, err := gocsv.MarshalBytes(&records)
	if err != nil {
		return nil, "", storeErr(err, "Exporting items")
	}
	filename := fmt.Sprintf("items-%s.csv", time.Now().Format("20060102-150405"))
	return out, filename, nil
}
