package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/audittrack/audittrack/audit"
	"github.com/audittrack/audittrack/fetch"
	"github.com/audittrack/audittrack/filter"
	"github.com/audittrack/audittrack/review"
)

var (
	reviewFilter string
	flagReason   string
)

// reviewCmd represents the review command group
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Work the review queue",
	Long:  `List documents awaiting human review and approve or flag them.`,
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents awaiting review",
	RunE:  runReviewList,
}

var reviewApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a queued document",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewApprove,
}

var reviewFlagCmd = &cobra.Command{
	Use:   "flag <id>",
	Short: "Flag a queued document with a reason",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewFlag,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewApproveCmd)
	reviewCmd.AddCommand(reviewFlagCmd)

	reviewListCmd.Flags().StringVarP(&reviewFilter, "filter", "f", "", "filter expression")
	reviewFlagCmd.Flags().StringVarP(&flagReason, "reason", "r", "", "reason for flagging (required)")
}

// newQueueContainer builds the review-queue view container
func newQueueContainer() *fetch.Container[[]audit.DocumentRecord] {
	return fetch.NewContainer("review-queue", func(ctx context.Context) ([]audit.DocumentRecord, error) {
		return auditClient.FetchReviewQueue(ctx)
	}, logger)
}

func runReviewList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	queue := newQueueContainer()
	queue.Mount(ctx)

	state := queue.State()
	if state.Err != nil {
		return state.Err
	}

	docs := state.Value
	if reviewFilter != "" {
		compiled, err := filter.Compile(reviewFilter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		docs, err = filter.Apply(docs, compiled)
		if err != nil {
			return err
		}
	}

	if len(docs) == 0 {
		fmt.Println("Review queue is empty.")
		return nil
	}

	fmt.Printf("%d documents awaiting review:\n\n", len(docs))
	printDocuments(docs)
	return nil
}

func runReviewApprove(cmd *cobra.Command, args []string) error {
	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	queue := newQueueContainer()
	mutator := review.NewMutator(auditClient, queue, logger)

	if err := mutator.ApproveDocument(ctx, id); err != nil {
		return err
	}

	fmt.Printf("✓ Document %d approved\n", id)
	printRemaining(queue)
	return nil
}

func runReviewFlag(cmd *cobra.Command, args []string) error {
	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	queue := newQueueContainer()
	mutator := review.NewMutator(auditClient, queue, logger)

	if err := mutator.FlagDocument(ctx, id, flagReason); err != nil {
		return err
	}

	fmt.Printf("✓ Document %d flagged: %s\n", id, flagReason)
	printRemaining(queue)
	return nil
}

func parseDocumentID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid document id %q: must be a number", arg)
	}
	return id, nil
}

// printRemaining shows the refreshed queue size after a mutation
func printRemaining(queue *fetch.Container[[]audit.DocumentRecord]) {
	state := queue.State()
	if state.Phase == fetch.PhaseReady {
		fmt.Printf("%d documents remain in the queue\n", len(state.Value))
	}
}
