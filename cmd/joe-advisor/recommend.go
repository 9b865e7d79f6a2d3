package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joestump/joe-advisor/internal/config"
	"github.com/joestump/joe-advisor/internal/logger"
	"github.com/joestump/joe-advisor/internal/recommend"
)

func newRecommendCmd() *cobra.Command {
	var (
		product         string
		income          string
		creditScore     string
		loanAmount      string
		repaymentPeriod string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Ask the model for a single recommendation",
		Example: `  joe-advisor recommend --product loan --income 75000 --credit-score 720 \
    --loan-amount 10000 --repayment-period 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(product, income, creditScore, loanAmount, repaymentPeriod)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			svc, err := newService(cfg, log)
			if err != nil {
				return err
			}

			rec, err := svc.Recommend(cmd.Context(), req)
			if err != nil {
				var incomplete *recommend.IncompleteRequestError
				if errors.As(err, &incomplete) {
					log.Debug("incomplete request", zap.Int("missing", len(incomplete.Missing)))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "AI Recommendations: %s\n", rec.Text)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&product, "product", "", "product of interest (savings_account, checking_account, loan, credit_card)")
	f.StringVar(&income, "income", "", "annual income")
	f.StringVar(&creditScore, "credit-score", "", "credit score")
	f.StringVar(&loanAmount, "loan-amount", "", "amount to borrow")
	f.StringVar(&repaymentPeriod, "repayment-period", "", "preferred repayment period in years")

	return cmd
}

// buildRequest converts flag values into a request. Empty flags stay absent
// so the service reports them as missing.
func buildRequest(product, income, creditScore, loanAmount, repaymentPeriod string) (recommend.RecommendationRequest, error) {
	p, err := recommend.ParseProduct(product)
	if err != nil {
		return recommend.RecommendationRequest{}, err
	}
	req := recommend.RecommendationRequest{
		Product:         p,
		CreditScore:     creditScore,
		LoanAmount:      loanAmount,
		RepaymentPeriod: repaymentPeriod,
	}
	if income != "" {
		d, err := decimal.NewFromString(income)
		if err != nil {
			return req, fmt.Errorf("invalid --income %q: %w", income, err)
		}
		req.Income = &d
	}
	return req, nil
}
