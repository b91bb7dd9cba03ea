package mediatype

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/go-playground/form/v4"
)

// XML encodes values with [encoding/xml].
type XML struct{}

func (XML) ContentType() string { return ContentTypeXML }

func (XML) Marshal(v any) ([]byte, error) {
	b, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("xml marshal: %w", err)
	}

	return b, nil
}

func (XML) Unmarshal(data []byte, v any) error {
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("xml unmarshal: %w", err)
	}

	return nil
}

// JSON encodes values with [encoding/json]. UseNumber makes the decoder
// keep numbers as [json.Number] instead of float64.
type JSON struct {
	UseNumber bool
}

func (JSON) ContentType() string { return ContentTypeJSON }

func (JSON) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}

	return b, nil
}

func (j JSON) Unmarshal(data []byte, v any) error {
	d := json.NewDecoder(bytes.NewReader(data))
	if j.UseNumber {
		d.UseNumber()
	}

	if err := d.Decode(v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}

	return nil
}

var (
	formEncoder = form.NewEncoder()
	formDecoder = form.NewDecoder()
)

// Form encodes structs and maps as application/x-www-form-urlencoded using
// `form` struct tags. [url.Values] pass through untouched.
type Form struct{}

func (Form) ContentType() string { return ContentTypeForm }

func (Form) Marshal(v any) ([]byte, error) {
	switch vals := v.(type) {
	case url.Values:
		return []byte(vals.Encode()), nil
	case *url.Values:
		return []byte(vals.Encode()), nil
	}

	vals, err := formEncoder.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("form marshal: %w", err)
	}

	return []byte(vals.Encode()), nil
}

func (Form) Unmarshal(data []byte, v any) error {
	vals, err := url.ParseQuery(string(data))
	if err != nil {
		return fmt.Errorf("form unmarshal: %w", err)
	}

	if dst, ok := v.(*url.Values); ok {
		*dst = vals
		return nil
	}

	if err := formDecoder.Decode(v, vals); err != nil {
		return fmt.Errorf("form unmarshal: %w", err)
	}

	return nil
}
