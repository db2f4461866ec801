// Package websocket - websocket/metrics.go
package websocket

import (
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"go-holo-council/logger"
)

// Namespace for all contest metrics
var metricsNamespace = "HoloCouncil"

// metrics are off unless explicitly enabled, so local runs and tests never
// touch AWS
var metricsEnabled = os.Getenv("ENABLE_CLOUDWATCH_METRICS") == "true"

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// PublishOperatorConnections pushes the current WebSocket connection count.
func PublishOperatorConnections(count int) {
	putMetric("OperatorConnections", float64(count), "Count")
}

// PublishBallotLatency pushes the time from submission to committed
// snapshot (in ms).
func PublishBallotLatency(latencyMs float64) {
	putMetric("BallotCommitLatencyMs", latencyMs, "Milliseconds")
}

// PublishBroadcastBacklog pushes a gauge for broadcast queue depth.
func PublishBroadcastBacklog(depth int) {
	putMetric("BroadcastQueueDepth", float64(depth), "Count")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string) {
	if !metricsEnabled {
		return
	}
	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(value),
				Unit:       aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
