package extract

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"sort"
	"strings"
)

// docx and pptx are both zip archives of XML. Text lives in <w:t>/<a:t> runs
// grouped into <w:p>/<a:p> paragraphs; everything else is formatting.

func fromDocx(path string) (string, error) {
	return zipXMLText(path, func(name string) bool {
		return name == "word/document.xml"
	})
}

func fromPptx(path string) (string, error) {
	return zipXMLText(path, func(name string) bool {
		return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
	})
}

func zipXMLText(path string, match func(string) bool) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	var names []string
	byName := map[string]*zip.File{}
	for _, f := range zr.File {
		if match(f.Name) {
			names = append(names, f.Name)
			byName[f.Name] = f
		}
	}
	sort.Strings(names) // slide order

	var sb strings.Builder
	for _, name := range names {
		rc, err := byName[name].Open()
		if err != nil {
			return "", err
		}
		text, err := textRuns(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func textRuns(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inRun := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inRun {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
