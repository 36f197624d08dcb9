package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	backendmetrics "github.com/pratyaywrites/profile-backend/pkg/metrics"
)

var (
	storeRequestDuration = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace: "profile",
		Subsystem: "store",
		Name:      "request_duration_seconds",
		Help:      "Duration of document store requests, in seconds.",
		Buckets:   stdprometheus.DefBuckets,
	}, []string{backendmetrics.LabelMethod, backendmetrics.LabelSuccess})
)

type instrumentedStore struct {
	next Store
}

func InstrumentStore(s Store) Store {
	return &instrumentedStore{
		next: s,
	}
}

func (i *instrumentedStore) observe(method string, begin time.Time, err error) {
	storeRequestDuration.With(
		backendmetrics.LabelMethod, method,
		backendmetrics.LabelSuccess, fmt.Sprint(err == nil),
	).Observe(time.Since(begin).Seconds())
}

func (i *instrumentedStore) Ping(ctx context.Context) (err error) {
	defer func(begin time.Time) { i.observe("Ping", begin, err) }(time.Now())
	return i.next.Ping(ctx)
}

func (i *instrumentedStore) Insert(ctx context.Context, ref api.CollectionRef, doc api.Document) (_ string, err error) {
	defer func(begin time.Time) { i.observe("Insert", begin, err) }(time.Now())
	return i.next.Insert(ctx, ref, doc)
}

func (i *instrumentedStore) Query(ctx context.Context, ref api.CollectionRef, query api.Query, limit int64) (_ []api.Document, err error) {
	defer func(begin time.Time) { i.observe("Query", begin, err) }(time.Now())
	return i.next.Query(ctx, ref, query, limit)
}

func (i *instrumentedStore) Get(ctx context.Context, ref api.CollectionRef, id string) (_ api.Document, err error) {
	defer func(begin time.Time) { i.observe("Get", begin, err) }(time.Now())
	return i.next.Get(ctx, ref, id)
}

func (i *instrumentedStore) Update(ctx context.Context, ref api.CollectionRef, id string, fields api.Document) (matched, modified int64, err error) {
	defer func(begin time.Time) { i.observe("Update", begin, err) }(time.Now())
	return i.next.Update(ctx, ref, id, fields)
}

func (i *instrumentedStore) Delete(ctx context.Context, ref api.CollectionRef, id string) (deleted int64, err error) {
	defer func(begin time.Time) { i.observe("Delete", begin, err) }(time.Now())
	return i.next.Delete(ctx, ref, id)
}
