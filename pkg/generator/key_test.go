package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_BasicProperties(t *testing.T) {
	key, err := Generate(KeyLength)

	assert.NoError(t, err)
	assert.Len(t, key, KeyLength, "public key should be %d characters long", KeyLength)
	assert.Regexp(t, "^[a-zA-Z0-9]+$", key, "key should only contain alphanumeric characters")
}

func TestGenerate_SecretLength(t *testing.T) {
	secret, err := Generate(SecretKeyLength)

	assert.NoError(t, err)
	assert.Len(t, secret, SecretKeyLength)
	assert.Regexp(t, "^[a-zA-Z0-9]+$", secret)
}

func TestGenerate_InvalidLength(t *testing.T) {
	_, err := Generate(0)
	assert.Error(t, err)

	_, err = Generate(-3)
	assert.Error(t, err)
}

func TestGenerate_Uniqueness(t *testing.T) {
	keys := make(map[string]bool, 1000)

	for i := 0; i < 1000; i++ {
		key, err := Generate(KeyLength)
		assert.NoError(t, err)

		assert.False(t, keys[key], "duplicate key generated: %s", key)
		keys[key] = true
	}

	assert.Equal(t, 1000, len(keys), "should generate 1000 unique keys")
}

func TestGenerate_SequentialCallsDiffer(t *testing.T) {
	key1, err1 := Generate(SecretKeyLength)
	key2, err2 := Generate(SecretKeyLength)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NotEqual(t, key1, key2, "sequential secrets should be different")
}
