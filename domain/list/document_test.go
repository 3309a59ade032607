package list

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "ac4y/errors"
)

func TestNew(t *testing.T) {
	cases := map[string]string{
		"ac4yIdentificationList": IdentificationListRoot,
		"AC4YIDENTIFICATIONLIST": IdentificationListRoot,
		"identification":         IdentificationListRoot,
		" Object ":               ObjectListRoot,
		"objectList":             ObjectListRoot,
		"ac4yObjectList":         ObjectListRoot,
	}

	for kind, root := range cases {
		doc, err := New(kind)
		require.NoError(t, err, kind)
		assert.Equal(t, root, doc.RootName(), kind)
		assert.Equal(t, 0, doc.Len(), kind)
	}
}

// TestNew_FreshInstances 每次返回新的容器
func TestNew_FreshInstances(t *testing.T) {
	a, err := New("identification")
	require.NoError(t, err)
	b, err := New("identification")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotSame(t, a.(*IdentificationList).GetAc4yIdentification(), b.(*IdentificationList).GetAc4yIdentification())
}

func TestNew_UnknownKind(t *testing.T) {
	doc, err := New("person")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{"ac4yIdentificationList", "ac4yObjectList"}, Kinds())
}

func TestSentinelCodes(t *testing.T) {
	for _, err := range []error{ErrUnknownKind, ErrRootMismatch} {
		normalized := appErrors.Normalize(fmt.Errorf("decode: %w", err))
		assert.Equal(t, appErrors.ErrCodeInvalidInput, appErrors.GetErrorCode(normalized), err.Error())
		assert.ErrorIs(t, normalized, err)
	}
}
