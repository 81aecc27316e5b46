package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCronJobMetricsExportsDurationsAndOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCronJobMetrics(reg)

	metrics.ObserveDuration("report-snapshot", 150*time.Millisecond)
	metrics.IncSuccess("report-snapshot")
	metrics.IncSuccess("report-snapshot")
	metrics.IncFailure("report-snapshot")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got := outcomeCount(t, mfs, "report-snapshot", "success"); got != 2 {
		t.Fatalf("expected 2 successes, got %f", got)
	}
	if got := outcomeCount(t, mfs, "report-snapshot", "failure"); got != 1 {
		t.Fatalf("expected 1 failure, got %f", got)
	}
	if got := durationSum(t, mfs, "report-snapshot"); got <= 0 {
		t.Fatalf("expected positive duration sum, got %f", got)
	}
}

func TestCronJobMetricsNilSafety(t *testing.T) {
	var metrics *CronJobMetrics
	metrics.ObserveDuration("x", time.Second)
	metrics.IncSuccess("x")
	metrics.IncFailure("x")

	unregistered := NewCronJobMetrics(nil)
	unregistered.IncSuccess("x")
}

func TestCronJobMetricsNormalizesEmptyJobName(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCronJobMetrics(reg)
	metrics.IncSuccess("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got := outcomeCount(t, mfs, "unknown", "success"); got != 1 {
		t.Fatalf("empty job name should count under unknown, got %f", got)
	}
}

func outcomeCount(t *testing.T, mfs []*dto.MetricFamily, job, outcome string) float64 {
	t.Helper()
	metric := findMetric(mfs, "cron_job_runs_total", map[string]string{"job": job, "outcome": outcome})
	if metric == nil {
		t.Fatalf("run counter for job=%s outcome=%s not found", job, outcome)
	}
	return metric.GetCounter().GetValue()
}

func durationSum(t *testing.T, mfs []*dto.MetricFamily, job string) float64 {
	t.Helper()
	metric := findMetric(mfs, "cron_job_duration_seconds", map[string]string{"job": job})
	if metric == nil {
		t.Fatalf("duration histogram for job=%s not found", job)
	}
	return metric.GetHistogram().GetSampleSum()
}

func findMetric(mfs []*dto.MetricFamily, name string, labels map[string]string) *dto.Metric {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range mf.GetMetric() {
			for want, value := range labels {
				if !hasLabel(metric.GetLabel(), want, value) {
					continue metrics
				}
			}
			return metric
		}
	}
	return nil
}

func hasLabel(pairs []*dto.LabelPair, name, value string) bool {
	for _, pair := range pairs {
		if pair.GetName() == name && pair.GetValue() == value {
			return true
		}
	}
	return false
}
