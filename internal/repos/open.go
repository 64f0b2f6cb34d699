package repos

import (
	"fmt"
	"io"
	"strings"

	"crm/internal/repos/gormrepo"
	"crm/internal/services"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// OpenStores picks the storage engine: "sqlite" uses sqlx over modernc sqlite,
// "postgres" and "gorm-sqlite" use gorm.
func OpenStores(driver, dsn string) (services.Stores, io.Closer, error) {
	switch driver {
	case "", "sqlite":
		db, err := OpenDB(dsn)
		if err != nil {
			return services.Stores{}, nil, err
		}
		return services.Stores{
			Customers: NewCustomerRepo(db),
			Products:  NewProductRepo(db),
			Orders:    NewOrderRepo(db),
		}, db, nil
	case "postgres", "gorm-sqlite":
		db, err := gormrepo.Open(strings.TrimPrefix(driver, "gorm-"), dsn)
		if err != nil {
			return services.Stores{}, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return services.Stores{}, nil, err
		}
		return services.Stores{
			Customers: gormrepo.NewCustomerRepo(db),
			Products:  gormrepo.NewProductRepo(db),
			Orders:    gormrepo.NewOrderRepo(db),
		}, closerFunc(sqlDB.Close), nil
	}
	return services.Stores{}, nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
}
