package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// PageParams pulls limit/skip out of the query string and clamps them.
func PageParams(limitRaw, skipRaw string) (limit, skip int) {
	limit = defaultLimit
	if n, err := strconv.Atoi(limitRaw); err == nil && n > 0 {
		limit = n
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if n, err := strconv.Atoi(skipRaw); err == nil && n > 0 {
		skip = n
	}
	return limit, skip
}

// Paginate applies limit/skip from the request to the query and fills out.
// The total matching count is exposed via the X-Total-Count header so list
// envelopes stay a plain data array.
func Paginate(c *fiber.Ctx, query *gorm.DB, out interface{}) error {
	limit, skip := PageParams(c.Query("limit"), c.Query("skip"))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return err
	}

	if err := query.Limit(limit).Offset(skip).Find(out).Error; err != nil {
		return err
	}

	c.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return nil
}
