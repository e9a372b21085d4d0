package services

import (
	"fmt"
	"strings"

	"tallybook/internal/models"
)

// Prompt assembly for the enrichment back-ends. The system prompt carries
// everything stable across a session (role, business context, chart); the
// user prompt carries the transaction and the pairing to explain.

func buildEnrichSystemPrompt(isBusiness bool, profile *models.BusinessProfile, accounts []models.Account) string {
	var b strings.Builder

	b.WriteString("You are an expert bookkeeper explaining double-entry journal entries to a small business owner.\n")

	if isBusiness && profile != nil {
		b.WriteString("\nBusiness Context:\n")
		if profile.BusinessType != "" {
			fmt.Fprintf(&b, "- Business type: %s\n", profile.BusinessType)
			if g := businessTypeGuidance(profile.BusinessType); g != "" {
				fmt.Fprintf(&b, "  %s\n", g)
			}
		}
		if profile.EntityType != "" {
			fmt.Fprintf(&b, "- Entity type: %s\n", profile.EntityType)
			if g := entityTypeGuidance(profile.EntityType); g != "" {
				fmt.Fprintf(&b, "  %s\n", g)
			}
		}
		if profile.BusinessCategory != "" {
			fmt.Fprintf(&b, "- Industry: %s\n", profile.BusinessCategory)
		}
		if profile.NAICSCode != "" {
			fmt.Fprintf(&b, "- NAICS code: %s\n", profile.NAICSCode)
		}
		fmt.Fprintf(&b, "- Accounting method: %s\n", accountingMethodGuidance(profile.AccountingMethod))
	}

	b.WriteString("\nChart of Accounts:\n")
	for _, a := range accounts {
		fmt.Fprintf(&b, "- %s (%s)\n", a.Name, a.Type)
	}

	b.WriteString("\nExplain in plain language why the given debit/credit pairing is correct for the transaction. ")
	b.WriteString("Keep it to at most 3 sentences. Do not restate the amounts.")

	return b.String()
}

func buildEnrichUserPrompt(txn *models.RawTransaction, suggestion *EntrySuggestion, debitName, creditName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transaction: %q", txn.Description)
	if txn.Merchant != "" {
		fmt.Fprintf(&b, " at %s", txn.Merchant)
	}
	fmt.Fprintf(&b, " for $%.2f\n", float64(txn.AbsAmount())/100)
	fmt.Fprintf(&b, "Proposed entry: debit %s, credit %s\n", debitName, creditName)
	b.WriteString("\nWhy is this the right entry?")

	return b.String()
}

func businessTypeGuidance(businessType string) string {
	switch strings.ToLower(businessType) {
	case "creator", "content_creator":
		return "Content creators commonly deduct equipment, software and home studio costs."
	case "tradesperson", "contractor":
		return "Trades businesses commonly deduct tools, materials, vehicle and job site costs."
	case "wellness", "fitness":
		return "Wellness businesses commonly deduct certifications, studio rent and client supplies."
	case "tutor", "educator":
		return "Education businesses commonly deduct teaching materials, subscriptions and workspace costs."
	case "real_estate":
		return "Real estate businesses commonly deduct mileage, marketing and licensing costs."
	case "agency", "consultant":
		return "Agencies commonly deduct software, contractor payments and client acquisition costs."
	default:
		return ""
	}
}

func entityTypeGuidance(entityType string) string {
	switch strings.ToLower(entityType) {
	case "sole_prop", "sole_proprietorship":
		return "Sole proprietors report business income on Schedule C; owner draws are equity, not expenses."
	case "llc":
		return "Single-member LLCs are typically disregarded entities; keep business and personal spending separate."
	case "s_corp", "scorp":
		return "S corporation owners take a salary; distributions and reimbursements follow an accountable plan."
	case "partnership":
		return "Partnership expenses flow through to partners; guaranteed payments are not wages."
	default:
		return ""
	}
}

func accountingMethodGuidance(method models.AccountingMethod) string {
	if method == models.AccountingMethodAccrual {
		return "accrual (recognize income when earned and expenses when incurred)"
	}
	return "cash (recognize income when received and expenses when paid)"
}
