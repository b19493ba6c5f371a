package optimization

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// JSONIndent is the indentation used by AsJSON
const JSONIndent = "  "

// AsJSON renders the result as indented JSON. Property maps keep row order.
func (r *Result) AsJSON() (string, error) {
	raw, err := json.MarshalIndent(r, "", JSONIndent)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

type resultJSON struct {
	Tier       wrathglory.Tier `json:"Tier"`
	Attributes json.RawMessage `json:"Attributes"`
	Skills     json.RawMessage `json:"Skills"`
	Traits     json.RawMessage `json:"Traits"`
	XPCost     XPCost          `json:"XPCost"`
}

// MarshalJSON implements json.Marshaler
func (r *Result) MarshalJSON() ([]byte, error) {
	attributes, err := json.Marshal(r.Attributes)
	if err != nil {
		return nil, err
	}
	skills, err := json.Marshal(r.Skills)
	if err != nil {
		return nil, err
	}
	traits, err := json.Marshal(r.Traits)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resultJSON{
		Tier:       r.Tier,
		Attributes: attributes,
		Skills:     skills,
		Traits:     traits,
		XPCost:     r.XPCost,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := NewResult(raw.Tier)
	out.XPCost = raw.XPCost
	if err := json.Unmarshal(raw.Attributes, out.Attributes); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	if err := json.Unmarshal(raw.Skills, out.Skills); err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	if err := json.Unmarshal(raw.Traits, out.Traits); err != nil {
		return fmt.Errorf("traits: %w", err)
	}
	*r = *out
	return nil
}

// MarshalJSON implements json.Marshaler
func (p *PropertyResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"Total":`)
	writeOrdered(&buf, p.Names, p.Total)
	buf.WriteString(`,"Target":`)
	writeOrdered(&buf, p.Names, p.Target)
	buf.WriteString(`,"Missed":`)
	missed, err := json.Marshal(p.Missed())
	if err != nil {
		return nil, err
	}
	buf.Write(missed)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Missed is derived and ignored.
func (p *PropertyResults) UnmarshalJSON(data []byte) error {
	var raw struct {
		Total  json.RawMessage `json:"Total"`
		Target json.RawMessage `json:"Target"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	names, totals, err := readOrdered(raw.Total)
	if err != nil {
		return err
	}
	_, targets, err := readOrdered(raw.Target)
	if err != nil {
		return err
	}

	p.Names, p.Total, p.Target = names, totals, targets
	return nil
}

// MarshalJSON implements json.Marshaler
func (s *SkillResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"Rank":`)
	writeOrdered(&buf, s.Names, s.Rank)
	buf.WriteByte(',')

	rest, err := s.PropertyResults.MarshalJSON()
	if err != nil {
		return nil, err
	}
	// splice the shared fields after Rank
	buf.Write(rest[1:])
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (s *SkillResults) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rank json.RawMessage `json:"Rank"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := s.PropertyResults.UnmarshalJSON(data); err != nil {
		return err
	}
	_, ranks, err := readOrdered(raw.Rank)
	if err != nil {
		return err
	}
	s.Rank = ranks
	return nil
}

type xpCostJSON struct {
	Attributes int `json:"Attributes"`
	Skills     int `json:"Skills"`
	Total      int `json:"Total"`
}

// MarshalJSON implements json.Marshaler
func (c XPCost) MarshalJSON() ([]byte, error) {
	return json.Marshal(xpCostJSON{Attributes: c.Attributes, Skills: c.Skills, Total: c.Total()})
}

// UnmarshalJSON implements json.Unmarshaler. Total is derived and ignored.
func (c *XPCost) UnmarshalJSON(data []byte) error {
	var raw xpCostJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Attributes, c.Skills = raw.Attributes, raw.Skills
	return nil
}

func writeOrdered(buf *bytes.Buffer, names []string, values map[string]int) {
	buf.WriteByte('{')
	first := true
	for _, name := range names {
		v, ok := values[name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(name)
		buf.Write(key)
		fmt.Fprintf(buf, ":%d", v)
	}
	buf.WriteByte('}')
}

// readOrdered decodes a flat object of integers, keeping key order
func readOrdered(data json.RawMessage) ([]string, map[string]int, error) {
	values := make(map[string]int)
	if len(data) == 0 || string(data) == "null" {
		return nil, values, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected key, got %v", tok)
		}
		var v int
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = v
	}
	return names, values, nil
}
