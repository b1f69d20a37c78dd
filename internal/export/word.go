package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/unidoc/unioffice/document"
)

// WriteWord renders the clinical note as a Word document. Section headers
// (lines ending with a colon and the CLINICAL NOTE banner) are emitted bold.
func (d Document) WriteWord(w io.Writer) error {
	doc := document.New()
	doc.CoreProperties.SetTitle("MedTranscribe Clinical Note")

	title := doc.AddParagraph().AddRun()
	title.Properties().SetBold(true)
	title.AddText("MedTranscribe Clinical Note")
	doc.AddParagraph()

	addField(doc, "Patient", d.PatientName)
	addField(doc, "Date", localeDate(d.Date))
	addField(doc, "Audio File", d.AudioFile)
	doc.AddParagraph()

	addSection(doc, "Transcription:", d.Transcription)
	doc.AddParagraph()
	addSection(doc, "Clinical Note:", d.ClinicalNote)

	if err := doc.Save(w); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}
	return nil
}

func addField(doc *document.Document, label, value string) {
	para := doc.AddParagraph()
	run := para.AddRun()
	run.Properties().SetBold(true)
	run.AddText(label + ": ")
	para.AddRun().AddText(value)
}

func addSection(doc *document.Document, header, body string) {
	run := doc.AddParagraph().AddRun()
	run.Properties().SetBold(true)
	run.AddText(header)

	for _, line := range strings.Split(body, "\n") {
		doc.AddParagraph().AddRun().AddText(line)
	}
}
