// Package metrics exposes Prometheus collectors for the reward pipeline.
package metrics

const (
	namespace = "blockinsight7000_rewards"
	unknown   = "unknown"
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown[T ~string](v T) string {
	if v == "" {
		return unknown
	}
	return string(v)
}
