package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyServiceNameValidation(t *testing.T) {
	svc := NewTaxonomyService(nil)

	_, err := svc.CreateCategory(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrValidation), "空白名称应当被拒绝")

	_, err = svc.CreateSector(context.Background(), "")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.CreateJobType(context.Background(), "")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.CreateSubCategory(context.Background(), "Backend", "")
	assert.True(t, errors.Is(err, ErrValidation), "子类别必须归属一个类别")
}
