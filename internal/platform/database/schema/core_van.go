package schema

// CoreVanTable represents the 'core.van' table
type CoreVanTable struct {
	Table       string
	ID          string
	Name        string
	Price       string
	Description string
	ImageURL    string
	Type        string
	HostID      string
}

// CoreVan is the schema definition for core.van
var CoreVan = CoreVanTable{
	Table:       "core.van",
	ID:          "id",
	Name:        "name",
	Price:       "price",
	Description: "description",
	ImageURL:    "imageurl",
	Type:        "type",
	HostID:      "hostid",
}

// Columns returns all standard column names in scan order
func (t CoreVanTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Price, t.Description, t.ImageURL, t.Type, t.HostID,
	}
}
