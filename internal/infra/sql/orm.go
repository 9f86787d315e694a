package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Find(dest any, conds ...any) ORM
	Group(name string) ORM
	Limit(limit int) ORM
	Model(value any) ORM
	Offset(offset int) ORM
	Order(value any) ORM
	Scan(dest any) ORM
	Select(query any, args ...any) ORM
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM

	Error() error
}

type DB struct {
	*gorm.DB
	autoMigrationEnabled bool
	timeout              time.Duration
}

var ErrRecordNotFound = errors.New("record not found")

func (d DB) Error() error {
	switch {
	case errors.Is(d.DB.Error, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case d.DB.Error != nil:
		return fmt.Errorf("database error: %w", d.DB.Error)
	default:
		return nil
	}
}

var _ ORM = (*DB)(nil)

func (d DB) AutoMigrate(dst ...any) error {
	if d.autoMigrationEnabled {
		return d.DB.AutoMigrate(dst...)
	}

	return nil
}

func (d DB) Count(value *int64) ORM {
	end := d.startSpan("count")
	d.DB = d.DB.Count(value)
	end(d.DB.Error)
	return &d
}

func (d DB) Create(value any) ORM {
	end := d.startSpan("create")
	d.DB = d.DB.Create(value)
	end(d.DB.Error)
	return &d
}

func (d DB) Find(value any, conds ...any) ORM {
	end := d.startSpan("find")
	d.DB = d.DB.Find(value, conds...)
	end(d.DB.Error)
	return &d
}

func (d DB) Group(name string) ORM {
	d.DB = d.DB.Group(name)
	return &d
}

func (d DB) Limit(value int) ORM {
	d.DB = d.DB.Limit(value)
	return &d
}

func (d DB) Model(value any) ORM {
	d.DB = d.DB.Model(value)
	return &d
}

func (d DB) Offset(value int) ORM {
	d.DB = d.DB.Offset(value)
	return &d
}

func (d DB) Order(value any) ORM {
	d.DB = d.DB.Order(value)
	return &d
}

func (d DB) Scan(dest any) ORM {
	end := d.startSpan("scan")
	d.DB = d.DB.Scan(dest)
	end(d.DB.Error)
	return &d
}

func (d DB) Select(query any, args ...any) ORM {
	d.DB = d.DB.Select(query, args...)
	return &d
}

func (d DB) Where(value any, conds ...any) ORM {
	d.DB = d.DB.Where(value, conds...)
	return &d
}

// WithContext applies the configured query timeout, if any, on top of ctx.
func (d DB) WithContext(value context.Context) ORM {
	if d.timeout > 0 {
		timeoutCtx, cancel := context.WithTimeout(value, d.timeout)
		go func() {
			<-timeoutCtx.Done()
			cancel()
		}()
		d.DB = d.DB.WithContext(timeoutCtx)
		return &d
	}

	d.DB = d.DB.WithContext(value)
	return &d
}

// startSpan opens a client span under the statement context. Statements
// without a context, or under an unsampled parent, are not traced.
func (d DB) startSpan(operation string) func(error) {
	ctx := d.DB.Statement.Context
	if ctx == nil || !trace.SpanFromContext(ctx).IsRecording() {
		return func(error) {}
	}

	_, span := otel.Tracer("leverbox/sql").Start(ctx, "sqlite."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "sqlite"),
			attribute.String("db.operation", operation),
		),
	)
	return func(err error) {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
