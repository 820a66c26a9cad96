package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestContainer_GetAllAndClear(t *testing.T) {
	var calls []string
	mw := func(name string) func(huma.Context, func(huma.Context)) {
		return func(ctx huma.Context, next func(huma.Context)) {
			calls = append(calls, name)
			next(ctx)
		}
	}

	c := NewContainer()
	c.Add(mw("logger"), mw("auth"))

	group := c.GetAllAndClear()
	assert.Len(t, group, 2)
	assert.Empty(t, c.GetAllAndClear())

	group.Handler(func(huma.Context) { calls = append(calls, "handler") })(nil)
	assert.Equal(t, []string{"logger", "auth", "handler"}, calls)
}
