package factory

import (
	"testing"

	"docassist/pkg/llm/ollama"
	"docassist/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantNil   bool
		wantErr   bool
		wantModel string
	}{
		{name: "unset", cfg: Config{}, wantNil: true},
		{name: "none", cfg: Config{Provider: "None"}, wantNil: true},
		{name: "ollama default model", cfg: Config{Provider: "ollama"}, wantModel: "llama3"},
		{name: "openai without key", cfg: Config{Provider: "openai"}, wantErr: true},
		{name: "openai", cfg: Config{Provider: "openai", APIKey: "k"}, wantModel: "gpt-3.5-turbo"},
		{name: "groq model override", cfg: Config{Provider: "groq", APIKey: "k", Model: "mixtral"}, wantModel: "mixtral"},
		{name: "unknown", cfg: Config{Provider: "bard"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.wantModel, p.Model())
		})
	}
}

func TestProviderKinds(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "ollama", BaseURL: "http://gpu:11434"})
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://gpu:11434", o.BaseURL)

	p, err = NewLLMProvider(Config{Provider: "huggingface", Model: "meta-llama/Llama-3.1-8B-Instruct"})
	require.NoError(t, err)
	_, ok = p.(*openai.Provider)
	assert.True(t, ok)
}
