package rules

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "ssh.yaml", `
name: ssh-bruteforce
realert: 10m
options:
  category: intrusion
alert_config:
  title: SSH brute force from {0}
  title_args:
    - src_ip
  tags:
    - bruteforce
observable_data_mapping:
  - ip: src_ip
  - domain: dns.question
    tlp: 3
    message: suspicious lookup
    tags:
      - dns
custom_fields:
  - name: sourceIP
    type: string
    value: src_ip
  - name: severity
    type: number
    value: 3
connection:
  host: https://hive.internal
  port: 9000
  apikey: secret
`)

	rule, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ssh-bruteforce", rule.Name)
	assert.Equal(t, 10*time.Minute, rule.Realert)
	assert.Equal(t, "intrusion", rule.Options["category"])
	assert.Equal(t, "SSH brute force from {0}", rule.AlertConfig["title"])

	require.Len(t, rule.ObservableMapping, 2)
	assert.Equal(t, "ip", rule.ObservableMapping[0].DataType)
	assert.Equal(t, "src_ip", rule.ObservableMapping[0].Field)
	assert.Nil(t, rule.ObservableMapping[0].TLP)

	second := rule.ObservableMapping[1]
	assert.Equal(t, "domain", second.DataType)
	assert.Equal(t, "dns.question", second.Field)
	require.NotNil(t, second.TLP)
	assert.Equal(t, 3, *second.TLP)
	require.NotNil(t, second.Message)
	assert.Equal(t, "suspicious lookup", *second.Message)
	assert.Equal(t, []string{"dns"}, second.Tags)

	require.Len(t, rule.CustomFields, 2)
	assert.Equal(t, StringValue("src_ip"), rule.CustomFields[0].Value)
	assert.Equal(t, ValueNumber, rule.CustomFields[1].Value.Kind)
	assert.Equal(t, 3, rule.CustomFields[1].Value.Number())

	require.NotNil(t, rule.Connection)
	assert.Equal(t, "https://hive.internal", rule.Connection.Host)
	assert.Equal(t, 9000, rule.Connection.Port)
}

func TestLoadFile_FieldValueKinds(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "kinds.yml", `
name: kinds
custom_fields:
  - name: ref
    type: string
    value: src_ip
  - name: quoted
    type: string
    value: "3"
  - name: score
    type: number
    value: 7.5
  - name: flag
    type: boolean
    value: true
  - name: listy
    type: string
    value: [a, b]
`)

	rule, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, rule.CustomFields, 5)

	assert.Equal(t, ValueString, rule.CustomFields[0].Value.Kind)
	// Quoted numbers stay field-name references
	assert.Equal(t, StringValue("3"), rule.CustomFields[1].Value)
	assert.Equal(t, ValueNumber, rule.CustomFields[2].Value.Kind)
	assert.Equal(t, 7.5, rule.CustomFields[2].Value.Number())
	assert.Equal(t, ValueInvalid, rule.CustomFields[3].Value.Kind)
	assert.Equal(t, ValueInvalid, rule.CustomFields[4].Value.Kind)
}

func TestLoadFile_ObservableEntryKeepsFirstPrimaryKey(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "multi.yaml", `
name: multi
observable_data_mapping:
  - ip: src_ip
    domain: dns.question
  - tlp: 1
    message: aux only
`)

	rule, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, rule.ObservableMapping, 2)

	assert.Equal(t, "ip", rule.ObservableMapping[0].DataType)
	assert.Equal(t, "src_ip", rule.ObservableMapping[0].Field)

	// Aux-only entry decodes but declares nothing
	assert.Empty(t, rule.ObservableMapping[1].DataType)
	require.NotNil(t, rule.ObservableMapping[1].TLP)
	assert.Equal(t, 1, *rule.ObservableMapping[1].TLP)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{
			name:    "missing rule name",
			file:    "noname.yaml",
			content: "options:\n  category: intrusion\n",
			errMsg:  "rule name is required",
		},
		{
			name:    "tlp out of range",
			file:    "badtlp.yaml",
			content: "name: badtlp\nobservable_data_mapping:\n  - ip: src_ip\n    tlp: 9\n",
			errMsg:  "tlp must be 0-3",
		},
		{
			name:    "malformed yaml",
			file:    "broken.yaml",
			content: "name: [unclosed\n",
			errMsg:  "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRuleFile(t, dir, tt.file, tt.content)
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "a.yaml", "name: rule-a\n")
	writeRuleFile(t, dir, "b.yml", "name: rule-b\n")
	writeRuleFile(t, dir, "notes.txt", "not a rule\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	loaded, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	names := []string{loaded[0].Name, loaded[1].Name}
	assert.ElementsMatch(t, []string{"rule-a", "rule-b"}, names)
}

func TestLoadDir_BadFileAbortsLoad(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "good.yaml", "name: good\n")
	writeRuleFile(t, dir, "bad.yaml", "options: {}\n")

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule name is required")
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rules directory")
}
