// Package remediation hands transactions that could not be resolved
// synchronously (a pending row whose rollback failed, or one stuck pending
// after a crash) to an asynchronous corrective process. The redemption
// engine never retries in-line; it enqueues and moves on.
package remediation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/subsidy-redemptions/pkg/api"
)

//go:generate mockery --name Queue --output ./mocks --outpkg mocks

// Queue defines the interface for enqueueing a transaction for corrective
// action.
type Queue interface {
	EnqueueTransaction(ctx context.Context, tx *api.Transaction) error
}

// SQSAPI captures the subset of the SQS client used by the queue.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSQueue implements Queue using AWS SQS.
type SQSQueue struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSQueue creates a new SQSQueue.
func NewSQSQueue(client SQSAPI, queueURL string) *SQSQueue {
	return &SQSQueue{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Queue = (*SQSQueue)(nil)

// EnqueueTransaction sends the transaction to the remediation queue.
func (q *SQSQueue) EnqueueTransaction(ctx context.Context, tx *api.Transaction) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction for SQS: %w", err)
	}

	_, err = q.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// NoOpQueue is a queue that drops everything. Useful where remediation is
// handled by the scheduled reconciliation sweep alone.
type NoOpQueue struct{}

// EnqueueTransaction does nothing.
func (q *NoOpQueue) EnqueueTransaction(ctx context.Context, tx *api.Transaction) error {
	return nil
}
