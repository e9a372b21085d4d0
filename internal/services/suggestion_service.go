package services

import (
	"fmt"

	"strings"

	apperrors "tallybook/internal/errors"
	"tallybook/internal/models"
	"tallybook/internal/taxonomy"
)

// Confidence tiers for heuristic account selection.
const (
	confidenceIncome      = 0.85
	confidenceExpense     = 0.80
	confidenceUncertain   = 0.50
	confidenceAlternative = 0.60
)

// suggestionService is the entry suggestion engine. It is stateless: every
// invocation works from the transaction, chart and context it is handed.
type suggestionService struct{}

// NewSuggestionService creates a new SuggestionServicer.
func NewSuggestionService() SuggestionServicer {
	return &suggestionService{}
}

// Suggest produces a balanced debit/credit pairing for a raw transaction.
// Direction follows the sign of the amount: inflows credit an income
// account and debit the bank; outflows debit an expense account and credit
// the card or bank that funded them.
func (s *suggestionService) Suggest(txn *models.RawTransaction, accounts []models.Account, opts SuggestOptions) (*EntrySuggestion, error) {
	bank := ResolveBankAccount(accounts)
	if bank == nil {
		return nil, apperrors.ErrNoBankAccount
	}

	category := opts.Category
	if category == "" {
		category = txn.Category
	}

	var suggestion *EntrySuggestion
	if txn.IsIncome() {
		suggestion = s.suggestIncome(txn, accounts, category, bank)
	} else {
		suggestion = s.suggestExpense(txn, accounts, category, bank, opts.Profile)
	}
	if suggestion == nil {
		// Income with no income account, or expense with no expense
		// account: the chart cannot express this transaction.
		return nil, apperrors.WithMessage(apperrors.ErrAccountNotFound,
			"chart of accounts has no account for this transaction type")
	}

	s.applyOverrides(suggestion, accounts, opts)
	return suggestion, nil
}

func (s *suggestionService) suggestIncome(txn *models.RawTransaction, accounts []models.Account, category string, bank *models.Account) *EntrySuggestion {
	income := findByTypeAndKeywords(accounts, models.AccountTypeIncome, taxonomy.AccountKeywords(category))
	if income == nil {
		income = firstOfType(accounts, models.AccountTypeIncome)
	}
	if income == nil {
		return nil
	}

	return &EntrySuggestion{
		DebitAccountID:  bank.ID,
		CreditAccountID: income.ID,
		Amount:          txn.AbsAmount(),
		Memo:            txn.Description,
		Confidence:      confidenceIncome,
		Explanation:     fmt.Sprintf("Income: %s deposited to %s", income.Name, bank.Name),
	}
}

func (s *suggestionService) suggestExpense(txn *models.RawTransaction, accounts []models.Account, category string, bank *models.Account, profile *models.BusinessProfile) *EntrySuggestion {
	expense := s.resolveExpenseAccount(txn, accounts, category, profile)
	if expense == nil {
		return nil
	}

	// Prefer the credit card as the funding leg when one exists.
	funding := ResolveCreditCardAccount(accounts)
	fundingKind := "credit card"
	if funding == nil {
		funding = bank
		fundingKind = "bank account"
	}

	confidence := confidenceExpense
	if strings.Contains(strings.ToLower(expense.Name), "uncategorized") {
		confidence = confidenceUncertain
	}

	return &EntrySuggestion{
		DebitAccountID:  expense.ID,
		CreditAccountID: funding.ID,
		Amount:          txn.AbsAmount(),
		Memo:            txn.Description,
		Confidence:      confidence,
		Explanation:     fmt.Sprintf("Expense: %s paid from %s (%s)", expense.Name, funding.Name, fundingKind),
	}
}

// resolveExpenseAccount walks the expense tier ladder: industry-preferred
// accounts, category keywords, description/merchant clusters, then any
// specific expense account, then any expense account at all.
func (s *suggestionService) resolveExpenseAccount(txn *models.RawTransaction, accounts []models.Account, category string, profile *models.BusinessProfile) *models.Account {
	// Tier 1: industry-preferred accounts for business spend.
	if txn.IsBusiness && profile != nil {
		if kws := taxonomy.IndustryKeywords(profile.BusinessType); kws != nil {
			if a := findByTypeAndKeywords(accounts, models.AccountTypeExpense, kws); a != nil {
				return a
			}
		}
	}

	// Tier 2: classified category mapped to account keywords.
	if category != "" {
		if a := findByTypeAndKeywords(accounts, models.AccountTypeExpense, taxonomy.AccountKeywords(category)); a != nil {
			return a
		}
	}

	// Tier 3: common word clusters. The description is checked before the
	// merchant because a user-entered title is the more reliable signal
	// than a raw merchant string.
	if kws := taxonomy.ClusterKeywords(txn.Description); kws != nil {
		if a := findByTypeAndKeywords(accounts, models.AccountTypeExpense, kws); a != nil {
			return a
		}
	}
	if kws := taxonomy.ClusterKeywords(txn.Merchant); kws != nil {
		if a := findByTypeAndKeywords(accounts, models.AccountTypeExpense, kws); a != nil {
			return a
		}
	}

	// Tier 4: any expense account that is not a catch-all.
	if a := firstSpecificExpense(accounts); a != nil {
		return a
	}

	// Tier 5: whatever expense account exists, catch-all included.
	return firstOfType(accounts, models.AccountTypeExpense)
}

// applyOverrides swaps in operator-chosen legs after the heuristic pass.
// Overrides are best-effort: an ID that is not in the chart is ignored and
// the heuristic choice stands.
func (s *suggestionService) applyOverrides(suggestion *EntrySuggestion, accounts []models.Account, opts SuggestOptions) {
	if a := findAccountByID(accounts, opts.OverrideDebitAccountID); a != nil {
		suggestion.DebitAccountID = a.ID
	}
	if a := findAccountByID(accounts, opts.OverrideCreditAccountID); a != nil {
		suggestion.CreditAccountID = a.ID
	}
}

// maxAlternatives caps the number of alternative pairings returned for
// human selection.
const maxAlternatives = 2

// Alternatives recomputes the primary suggestion and enumerates up to two
// other same-type accounts as lower-confidence pairings. Nothing here is
// persisted; this is a read-side helper for the approval queue.
func (s *suggestionService) Alternatives(txn *models.RawTransaction, accounts []models.Account, profile *models.BusinessProfile) (*AlternativeSet, error) {
	primary, err := s.Suggest(txn, accounts, SuggestOptions{Profile: profile})
	if err != nil {
		return nil, err
	}

	bank := ResolveBankAccount(accounts)
	result := &AlternativeSet{Primary: *primary, Alternatives: []EntrySuggestion{}}

	if txn.IsIncome() {
		for i := range accounts {
			if len(result.Alternatives) == maxAlternatives {
				break
			}
			a := &accounts[i]
			if a.Type != models.AccountTypeIncome || a.ID == primary.CreditAccountID {
				continue
			}
			result.Alternatives = append(result.Alternatives, EntrySuggestion{
				DebitAccountID:  bank.ID,
				CreditAccountID: a.ID,
				Amount:          primary.Amount,
				Memo:            primary.Memo,
				Confidence:      confidenceAlternative,
				Explanation:     fmt.Sprintf("Alternative: %s income", a.Name),
			})
		}
		return result, nil
	}

	for i := range accounts {
		if len(result.Alternatives) == maxAlternatives {
			break
		}
		a := &accounts[i]
		if a.Type != models.AccountTypeExpense || a.ID == primary.DebitAccountID {
			continue
		}
		result.Alternatives = append(result.Alternatives, EntrySuggestion{
			DebitAccountID:  a.ID,
			CreditAccountID: bank.ID,
			Amount:          primary.Amount,
			Memo:            primary.Memo,
			Confidence:      confidenceAlternative,
			Explanation:     fmt.Sprintf("Alternative: %s expense", a.Name),
		})
	}
	return result, nil
}
