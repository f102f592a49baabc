package main

import (
	"sort"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/organ-ledger/application"
	"github.com/luca-patrignani/organ-ledger/domain/organ"
	"github.com/luca-patrignani/organ-ledger/ledger"
)

const hashPrefixLen = 12

func shortHash(h string) string {
	if len(h) > hashPrefixLen {
		return h[:hashPrefixLen]
	}
	return h
}

func blocksTable(blocks []ledger.Block) pterm.TableData {
	data := pterm.TableData{{"#", "Timestamp", "Hash", "Previous Hash", "Data"}}
	for _, b := range blocks {
		data = append(data, []string{
			strconv.Itoa(b.Index),
			b.Time().Format(time.DateTime),
			shortHash(b.Hash),
			shortHash(b.PrevHash),
			b.Render(),
		})
	}
	return data
}

func printBlocks(title string, blocks []ledger.Block) error {
	pterm.DefaultSection.Println(title)
	if len(blocks) == 0 {
		pterm.Info.Println("No blocks found")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(blocksTable(blocks)).Render()
}

func outcomeBox(out application.MatchOutcome, recipient string) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	if !out.Matched {
		return pbox.WithTitle(pterm.LightYellow("|WAITING LIST|")).WithTitleTopCenter().Sprintf(
			"No matching donor found for %s.\nRecipient recorded in block #%d.", recipient, out.Recipient.Index)
	}
	return pbox.WithTitle(pterm.LightGreen("|MATCH FOUND|")).WithTitleTopCenter().Sprintf(
		"%s (%s, %s) matched with %s\nTransplant recorded in block #%d",
		pterm.LightCyan(out.Donor.Name), out.Donor.BloodType, out.Donor.Hospital,
		pterm.LightCyan(recipient), out.Recorded.Transplant.Index)
}

func printValidationError(verr organ.ValidationError) {
	fields := make([]string, 0, len(verr))
	for f := range verr {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		pterm.Error.Printfln("%s %s", f, verr[f])
	}
}
