package llm

import (
	"testing"
)

func TestDecodePayload_PlainJSON(t *testing.T) {
	reply := `{"entries":[{"subject":"Maths","day":"Monday","start_time":"08:00","end_time":"09:00","room":""}],"confidence":0.9}`
	p, err := DecodePayload(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Entries) != 1 || p.Entries[0].Subject != "Maths" {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if p.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", p.Confidence)
	}
}

func TestDecodePayload_FencedJSON(t *testing.T) {
	reply := "```json\n{\"entries\":[],\"confidence\":0.5,\"notes\":\"empty\"}\n```"
	p, err := DecodePayload(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Notes != "empty" || p.Confidence != 0.5 {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestDecodePayload_JSONBuriedInProse(t *testing.T) {
	reply := `Sure! Here is the extracted timetable:
{"entries":[{"subject":"Physics","day":"Tuesday","start_time":"10:00","end_time":"11:00","room":"Lab 1"}],"confidence":0.8}
Let me know if you need anything else.`
	p, err := DecodePayload(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Entries) != 1 || p.Entries[0].Room != "Lab 1" {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestDecodePayload_ErrorField(t *testing.T) {
	p, err := DecodePayload(`{"error":"not a timetable","confidence":0.0}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Error != "not a timetable" {
		t.Fatalf("error field not decoded: %+v", p)
	}
}

func TestDecodePayload_Garbage(t *testing.T) {
	for _, reply := range []string{"", "total nonsense", "```\nnope\n```", "[1,2,3]"} {
		if _, err := DecodePayload(reply); err == nil {
			t.Fatalf("expected error for %q", reply)
		}
	}
}

func TestDecodePayload_NullRoom(t *testing.T) {
	reply := `{"entries":[{"subject":"Maths","day":"Monday","start_time":"08:00","end_time":"09:00","room":null}],"confidence":0.9}`
	p, err := DecodePayload(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Entries) != 1 || p.Entries[0].Room != "" {
		t.Fatalf("null room should decode to empty string: %+v", p)
	}
}

func TestDecodePayload_SchemaViolationRejected(t *testing.T) {
	reply := `{"entries":[{"subject":"Maths","start_time":"08:00","end_time":"09:00"}],"confidence":0.9}`
	if _, err := DecodePayload(reply); err == nil {
		t.Fatalf("entry without a day should fail schema validation")
	}
}

func TestValidatePayload(t *testing.T) {
	good := []byte(`{"entries":[{"subject":"Maths","day":"Monday","start_time":"08:00","end_time":"09:00"}],"confidence":0.9}`)
	if err := ValidatePayload(good); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	missingDay := []byte(`{"entries":[{"subject":"Maths","start_time":"08:00","end_time":"09:00"}]}`)
	if err := ValidatePayload(missingDay); err == nil {
		t.Fatalf("payload with missing day accepted")
	}

	wrongType := []byte(`{"entries":"nope"}`)
	if err := ValidatePayload(wrongType); err == nil {
		t.Fatalf("payload with string entries accepted")
	}
}
