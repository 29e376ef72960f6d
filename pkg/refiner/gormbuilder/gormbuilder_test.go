package gormbuilder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"refiner/pkg/refiner"
)

type product struct {
	ID       uint
	Code     string
	Name     string
	Category string
}

type productRefiner struct{}

func (productRefiner) Definitions() []*Definition {
	return []*Definition{
		Define("code").Search().Sort(true),
		Define("name").SearchLike(refiner.LikeEnd).Sort(true),
		Define("category").SearchIn(),
		Define("q").SearchCustom(func(q *gorm.DB, v any) *gorm.DB {
			return q.Where("name = ? OR code = ?", v, v)
		}),
	}
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "shop:secret@tcp(127.0.0.1:3306)/shop?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestDB_Apply(t *testing.T) {
	db := dryRunDB(t)

	in := refiner.Input{
		Search: map[string]any{
			"code":     "A1",
			"name":     "desk",
			"category": []any{"office", "home"},
			"q":        "lamp",
		},
		Sort: []refiner.SortParam{{Name: "name", Direction: "desc"}, {Name: "category", Direction: "asc"}},
	}

	r := New(productRefiner{})
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		q, err := r.Apply(context.Background(), tx.Model(&product{}), in)
		require.NoError(t, err)
		return q.Find(&[]product{})
	})

	assert.Contains(t, sql, "FROM `products`")
	assert.Contains(t, sql, "`code` = 'A1'")
	assert.Contains(t, sql, "`name` LIKE 'desk%'")
	assert.Contains(t, sql, "`category` IN ('office','home')")
	assert.Contains(t, sql, "(name = 'lamp' OR code = 'lamp')")
	assert.Contains(t, sql, "ORDER BY `name` DESC")
	assert.NotContains(t, sql, "`category` ASC")

	sorted, err := r.SortDirection("name")
	require.NoError(t, err)
	assert.Equal(t, refiner.Desc, sorted)
}

func TestDB_OrderAscending(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return DB{}.OrderBy(tx.Model(&product{}), "name", refiner.Asc).Find(&[]product{})
	})
	assert.Contains(t, sql, "ORDER BY `name`")
	assert.NotContains(t, sql, "DESC")
}
