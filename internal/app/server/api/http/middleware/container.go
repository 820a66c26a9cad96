package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container собирает мидлвари для очередной группы операций.
type Container struct {
	mws huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

// Add добавляет мидлвари в порядке вызова: первая добавленная выполняется первой.
func (mc *Container) Add(mws ...func(ctx huma.Context, next func(huma.Context))) {
	mc.mws = append(mc.mws, mws...)
}

// GetAllAndClear отдает накопленные мидлвари и начинает новую группу
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := mc.mws
	mc.mws = nil
	return result
}
