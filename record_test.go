package rackspace

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_ToMap_A(t *testing.T) {
	r := &Record{Name: "www.example.com", Type: TypeA, Data: "192.0.2.1", Priority: 10}

	assert.Equal(t, map[string]any{
		"name": "www.example.com",
		"type": "A",
		"data": "192.0.2.1",
	}, r.ToMap())
}

func TestRecord_ToMap_MXAlwaysHasPriority(t *testing.T) {
	r := &Record{Name: "example.com", Type: TypeMX, Data: "mail.example.com"}

	data := r.ToMap()
	require.Contains(t, data, "priority")
	assert.Equal(t, 0, data["priority"])
}

func TestRecord_ToMap_OptionalFields(t *testing.T) {
	r := &Record{
		ID:       "SRV-1234",
		Name:     "_sip._tcp.example.com",
		Type:     TypeSRV,
		Data:     "1 5060 sip.example.com",
		TTL:      3600,
		Priority: 10,
		Comment:  "voip",
	}

	assert.Equal(t, map[string]any{
		"id":       "SRV-1234",
		"name":     "_sip._tcp.example.com",
		"type":     "SRV",
		"data":     "1 5060 sip.example.com",
		"ttl":      3600,
		"priority": 10,
		"comment":  "voip",
	}, r.ToMap())
}

func TestRecord_ToMap_RequiredFieldsEvenWhenEmpty(t *testing.T) {
	r := &Record{Type: TypeCNAME}

	assert.Equal(t, map[string]any{
		"name": "",
		"type": "CNAME",
		"data": "",
	}, r.ToMap())
}

func TestRecord_ToMap_NoType(t *testing.T) {
	assert.Equal(t, map[string]any{}, (&Record{Name: "x", Data: "y"}).ToMap())
	assert.Equal(t, map[string]any{"id": "A-1"}, (&Record{ID: "A-1", Name: "x"}).ToMap())
}

func TestRecord_ToMap_DKIMAndSPFAreTXT(t *testing.T) {
	r := &Record{Name: "example.com", Type: TypeSPF, Data: "v=spf1 -all"}
	assert.Equal(t, "TXT", r.ToMap()["type"])
	assert.NotContains(t, r.ToMap(), "priority")
	assert.Equal(t, TypeTXT, TypeDKIM)
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	raw := `{
		"name": "www.example.com",
		"id": "A-6822994",
		"type": "A",
		"data": "192.0.2.17",
		"ttl": 86400,
		"comment": "web",
		"updated": "2011-06-24T01:23:15.000+0000",
		"created": "2011-06-24T01:12:52.000+0000",
		"unknownField": true
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "A-6822994", r.ID)
	assert.Equal(t, "www.example.com", r.Name)
	assert.Equal(t, TypeA, r.Type)
	assert.Equal(t, "192.0.2.17", r.Data)
	assert.Equal(t, 86400, r.TTL)
	assert.Equal(t, "web", r.Comment)
	assert.True(t, time.Date(2011, 6, 24, 1, 12, 52, 0, time.UTC).Equal(r.Created))
	assert.True(t, time.Date(2011, 6, 24, 1, 23, 15, 0, time.UTC).Equal(r.Updated))
}

func TestRecord_UnmarshalJSON_BadTimestamp(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"id":"A-1","created":"yesterday"}`), &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created")
}

func TestRecordList_JSON(t *testing.T) {
	raw := `{"records":[
		{"name":"example.com","id":"NS-1","type":"NS","data":"dns1.stabletransit.com","ttl":3600},
		{"name":"example.com","id":"MX-1","type":"MX","data":"mail.example.com","priority":5,"ttl":3600}
	],"totalEntries":2}`

	var l RecordList
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	require.Equal(t, 2, l.Len())
	assert.Equal(t, 2, l.TotalEntries)

	mx, ok := l.At(1)
	require.True(t, ok)
	assert.Equal(t, 5, mx.Priority)

	encoded, err := json.Marshal(&l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[
		{"name":"example.com","id":"NS-1","type":"NS","data":"dns1.stabletransit.com","ttl":3600},
		{"name":"example.com","id":"MX-1","type":"MX","data":"mail.example.com","priority":5,"ttl":3600}
	]}`, string(encoded))
}

func TestRecordList_ToMap_Nil(t *testing.T) {
	var l *RecordList
	assert.Equal(t, map[string]any{"records": []map[string]any{}}, l.ToMap())
}
