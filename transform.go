package formrec

// toAnalyzeResult maps the raw terminal payload onto the domain-shaped
// result. It is pure and deterministic, and tolerates absent sections:
// different analysis kinds populate different subsets of the wire payload,
// so missing sections become empty slices and maps rather than errors.
func toAnalyzeResult(wire *analyzeResultWire) AnalyzeResult {
	result := AnalyzeResult{
		Pages:     []Page{},
		Tables:    []Table{},
		Documents: []RecognizedDocument{},
	}
	if wire == nil {
		return result
	}
	result.Version = wire.Version

	for _, read := range wire.ReadResults {
		page := Page{
			Number: read.Page,
			Angle:  read.Angle,
			Width:  read.Width,
			Height: read.Height,
			Unit:   read.Unit,
			Lines:  make([]Line, 0, len(read.Lines)),
		}
		for _, line := range read.Lines {
			l := Line{
				Text:        line.Text,
				BoundingBox: line.BoundingBox,
				Words:       make([]Word, 0, len(line.Words)),
			}
			for _, word := range line.Words {
				l.Words = append(l.Words, Word{
					Text:        word.Text,
					BoundingBox: word.BoundingBox,
					Confidence:  word.Confidence,
				})
			}
			page.Lines = append(page.Lines, l)
		}
		result.Pages = append(result.Pages, page)
	}

	for _, pageResult := range wire.PageResults {
		for _, table := range pageResult.Tables {
			t := Table{
				Page:     pageResult.Page,
				RowCount: table.Rows,
				ColCount: table.Columns,
				Cells:    make([]TableCell, 0, len(table.Cells)),
			}
			for _, cell := range table.Cells {
				t.Cells = append(t.Cells, TableCell{
					Text:        cell.Text,
					RowIndex:    cell.RowIndex,
					ColumnIndex: cell.ColumnIndex,
					RowSpan:     cell.RowSpan,
					ColumnSpan:  cell.ColumnSpan,
					Confidence:  cell.Confidence,
				})
			}
			result.Tables = append(result.Tables, t)
		}
	}

	for _, doc := range wire.DocumentResults {
		d := RecognizedDocument{
			DocType: doc.DocType,
			Fields:  map[string]Field{},
		}
		if len(doc.PageRange) == 2 {
			d.FirstPage = doc.PageRange[0]
			d.LastPage = doc.PageRange[1]
		}
		for name, field := range doc.Fields {
			d.Fields[name] = Field{
				Type:        field.Type,
				Text:        field.Text,
				ValueString: field.ValueString,
				ValueNumber: field.ValueNumber,
				Confidence:  field.Confidence,
			}
		}
		result.Documents = append(result.Documents, d)
	}

	return result
}
