package ncdt

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// nctgTag names the NCTG record in exported documents.
const nctgTag = "NctgBox"

type nctgDoc struct {
	Tag              string  `json:"NCTG" yaml:"NCTG"`
	DateTimeOriginal *string `json:"date_time_original,omitempty" yaml:"date_time_original,omitempty"`
	TimeZone         *string `json:"time_zone,omitempty" yaml:"time_zone,omitempty"`
}

type ncdtDoc struct {
	Nctg *nctgDoc `json:"nctg,omitempty" yaml:"nctg,omitempty"`
}

func (b *NctgBox) doc() *nctgDoc {
	return &nctgDoc{
		Tag:              nctgTag,
		DateTimeOriginal: b.DateTimeOriginal,
		TimeZone:         b.TimeZone,
	}
}

func (b *NcdtBox) doc() ncdtDoc {
	var d ncdtDoc
	if b.Nctg != nil {
		d.Nctg = b.Nctg.doc()
	}
	return d
}

// MarshalJSON implements json.Marshaler.
func (b *NctgBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.doc())
}

// MarshalYAML implements yaml.Marshaler.
func (b *NctgBox) MarshalYAML() (any, error) {
	return b.doc(), nil
}

// MarshalJSON implements json.Marshaler.
func (b *NcdtBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.doc())
}

// MarshalYAML implements yaml.Marshaler.
func (b *NcdtBox) MarshalYAML() (any, error) {
	return b.doc(), nil
}

// ToJSON returns the box as a JSON document.
func (b *NcdtBox) ToJSON() (string, error) {
	out, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ToYAML returns the box as a YAML document.
func (b *NcdtBox) ToYAML() (string, error) {
	out, err := yaml.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
