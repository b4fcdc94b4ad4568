package registry

import (
	"math"
	"strconv"
	"time"

	"github.com/bz888/ollamachat/internal/ollama"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders n in base-1024 units rounded to two decimals.
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i, scale := 0, float64(1)
	for i < len(sizeUnits)-1 && float64(n) >= scale*1024 {
		i++
		scale *= 1024
	}
	v := math.Round(float64(n)/scale*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02")
}

// Summarize builds the one-line description shown for a model.
func Summarize(m ollama.Model) Summary {
	meta := "Unknown size"
	if m.Size > 0 {
		meta = FormatBytes(m.Size)
	}
	if date := formatDate(m.ModifiedAt); date != "" {
		meta += " • " + date
	}
	return Summary{Name: m.Name, Meta: meta}
}

// DetailFields lists the populated details of a model. The first field is
// always the model name, or N/A when the server sent no modelfile.
func DetailFields(name string, info *ollama.ModelInfo) []Field {
	modelName := "N/A"
	if info.Modelfile != "" {
		modelName = name
	}
	fields := []Field{{Label: "Model", Value: modelName}}

	if info.Details.Format != "" {
		fields = append(fields, Field{Label: "Format", Value: info.Details.Format})
	}
	if info.Details.Family != "" {
		fields = append(fields, Field{Label: "Family", Value: info.Details.Family})
	}
	if info.Details.ParameterSize != "" {
		fields = append(fields, Field{Label: "Parameters", Value: info.Details.ParameterSize})
	}
	return fields
}
