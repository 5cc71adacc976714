package formrec

// Wire types mirror the JSON shape of the analyzeResults resource. Different
// analysis kinds populate different subsets; every field is optional on the
// wire and the transform maps absent sections to empty values.

type analyzeResponse struct {
	Status              string             `json:"status"`
	CreatedDateTime     string             `json:"createdDateTime"`
	LastUpdatedDateTime string             `json:"lastUpdatedDateTime"`
	AnalyzeResult       *analyzeResultWire `json:"analyzeResult"`
	Error               *serviceErrorWire  `json:"error"`
}

type serviceErrorWire struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type analyzeResultWire struct {
	Version         string               `json:"version"`
	ReadResults     []readResultWire     `json:"readResults"`
	PageResults     []pageResultWire     `json:"pageResults"`
	DocumentResults []documentResultWire `json:"documentResults"`
}

type readResultWire struct {
	Page   int        `json:"page"`
	Angle  float64    `json:"angle"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Unit   string     `json:"unit"`
	Lines  []lineWire `json:"lines"`
}

type lineWire struct {
	Text        string     `json:"text"`
	BoundingBox []float64  `json:"boundingBox"`
	Words       []wordWire `json:"words"`
}

type wordWire struct {
	Text        string    `json:"text"`
	BoundingBox []float64 `json:"boundingBox"`
	Confidence  float64   `json:"confidence"`
}

type pageResultWire struct {
	Page   int         `json:"page"`
	Tables []tableWire `json:"tables"`
}

type tableWire struct {
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Cells   []cellWire `json:"cells"`
}

type cellWire struct {
	Text        string  `json:"text"`
	RowIndex    int     `json:"rowIndex"`
	ColumnIndex int     `json:"columnIndex"`
	RowSpan     int     `json:"rowSpan"`
	ColumnSpan  int     `json:"columnSpan"`
	Confidence  float64 `json:"confidence"`
}

type documentResultWire struct {
	DocType   string               `json:"docType"`
	PageRange []int                `json:"pageRange"`
	Fields    map[string]fieldWire `json:"fields"`
}

type fieldWire struct {
	Type        string  `json:"type"`
	Text        string  `json:"text"`
	ValueString string  `json:"valueString"`
	ValueNumber float64 `json:"valueNumber"`
	Confidence  float64 `json:"confidence"`
}
