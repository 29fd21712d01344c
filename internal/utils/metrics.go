package utils

import (
	"time"

	"geocortex/pkg/metrics"
)

func RecordMongoOperationDuration(operation, collection string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.MongoOperationDuration.WithLabelValues(operation, collection).Observe(duration)
}

func RecordMongoError(operation, collection string) {
	metrics.MongoErrorsTotal.WithLabelValues(operation, collection).Inc()
}

func RecordRedisOperationDuration(operation string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.RedisOperationDuration.WithLabelValues(operation).Observe(duration)
}

func RecordRedisError(operation string) {
	metrics.RedisErrorsTotal.WithLabelValues(operation).Inc()
}

func RecordCacheHit(cache string) {
	metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
}

func RecordCacheMiss(cache string) {
	metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
}

func RecordIngestedRow(outcome string) {
	metrics.IngestedRowsTotal.WithLabelValues(outcome).Inc()
}

func RecordGeocoderRequest(status string, start time.Time) {
	metrics.GeocoderRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}
