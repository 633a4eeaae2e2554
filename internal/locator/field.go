package locator

// Field is one logical piece of schedulable information on the page.
type Field int

const (
	WorkPeriod Field = iota
	WorkTime
	JobTitle
	MapLink
	Belongings
	Clothing
)

var fieldNames = map[Field]string{
	WorkPeriod: "work_period",
	WorkTime:   "work_time",
	JobTitle:   "job_title",
	MapLink:    "map_link",
	Belongings: "belongings",
	Clothing:   "clothing",
}

// displayNames are the labels shown in diagnostics, as the page names them.
var displayNames = map[Field]string{
	WorkPeriod: "勤務期間",
	WorkTime:   "勤務時間",
	JobTitle:   "タイトル",
	MapLink:    "地図URL",
	Belongings: "持ち物",
	Clothing:   "服装",
}

// AllFields lists every field in pipeline order.
func AllFields() []Field {
	return []Field{WorkPeriod, WorkTime, JobTitle, MapLink, Belongings, Clothing}
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// DisplayName returns the Japanese name of the field.
func (f Field) DisplayName() string {
	return displayNames[f]
}

// RawField is located text plus the strategy that produced it.
type RawField struct {
	Field    Field
	Text     string
	Strategy string
}

// MarshalText encodes the field by name.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
