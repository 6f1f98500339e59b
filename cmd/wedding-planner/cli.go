package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/capture"
	"wedding-planner/internal/handler"
	"wedding-planner/internal/models"
	"wedding-planner/internal/planner"
)

type cli struct {
	planner *planner.Planner
	session *advice.Session
	rsvp    *handler.RSVPHandler
	voice   advice.SpeechRecognizer
	breaker *advice.Breaker

	scanner *bufio.Scanner
}

func (c *cli) run(ctx context.Context) {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(os.Stdin)
		c.scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	}

	for {
		fmt.Println("\nMenu:")
		fmt.Println("  1. Dashboard")
		fmt.Println("  2. Checklist")
		fmt.Println("  3. Guests")
		fmt.Println("  4. Budget")
		fmt.Println("  5. Gifts")
		fmt.Println("  6. Moodboard")
		fmt.Println("  7. Ask the planner")
		fmt.Println("  8. Settings")
		fmt.Println("  9. Exit")

		command, ok := c.prompt("\nEnter command (1-9): ")
		if !ok {
			return
		}

		switch command {
		case "1":
			c.showDashboard()
		case "2":
			c.tasksMenu()
		case "3":
			c.guestsMenu(ctx)
		case "4":
			c.budgetMenu(ctx)
		case "5":
			c.giftsMenu()
		case "6":
			c.moodboardMenu(ctx)
		case "7":
			c.chat(ctx)
		case "8":
			c.settingsMenu()
		case "9":
			fmt.Println("Exiting...")
			return
		default:
			fmt.Println("Invalid command. Please try again.")
		}
	}
}

// prompt prints label and reads one trimmed line; false on EOF
func (c *cli) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

func (c *cli) readLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

func (c *cli) promptNumber(label string) (float64, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Println("Please enter a number.")
		return 0, false
	}
	return n, true
}

// pick asks for a 1-based index into a list of n items
func (c *cli) pick(label string, n int) (int, bool) {
	if n == 0 {
		fmt.Println("Nothing to choose from.")
		return 0, false
	}
	raw, ok := c.prompt(fmt.Sprintf("%s (1-%d): ", label, n))
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 1 || i > n {
		fmt.Println("Invalid choice.")
		return 0, false
	}
	return i - 1, true
}

func report(err error, success string) {
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Printf("✅ %s\n", success)
}

func divider() {
	fmt.Println(strings.Repeat("-", 60))
}

func (c *cli) showDashboard() {
	d := c.planner.Dashboard()

	fmt.Printf("\n💍 %d days to go (%s)\n", d.DaysLeft, d.WeddingDate)
	divider()
	fmt.Printf("Checklist: %d/%d done (%d%%)\n", d.CompletedTasks, d.TotalTasks, d.TaskProgress)
	fmt.Printf("Guests:    %d/%d confirmed\n", d.ConfirmedGuests, d.TotalGuests)
	fmt.Printf("Budget:    $%.2f of $%.2f (%d%%), $%.2f paid\n", d.TotalCost, d.BudgetGoal, d.BudgetProgress, d.TotalPaid)
	divider()
}

func (c *cli) tasksMenu() {
	category := planner.AllCategories
	for {
		tasks := c.planner.TasksByCategory(category)
		fmt.Printf("\n✅ Checklist [%s] (%d tasks):\n", category, len(tasks))
		divider()
		for i, t := range tasks {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			fmt.Printf("%2d. [%s] %s (%s, due %s)\n", i+1, mark, t.Title, t.Category, t.DueDate)
		}
		divider()
		fmt.Println("  a. Add  t. Toggle  d. Delete  f. Filter  b. Back")

		cmd, ok := c.prompt("> ")
		if !ok || cmd == "b" {
			return
		}

		switch cmd {
		case "a":
			title, _ := c.prompt("Title: ")
			cat, _ := c.prompt("Category (blank for General): ")
			due, _ := c.prompt("Due date YYYY-MM-DD (blank for today): ")
			_, err := c.planner.AddTaskWithDetails(planner.TaskInput{Title: title, Category: cat, DueDate: due})
			report(err, "Task added")
		case "t":
			if i, ok := c.pick("Task", len(tasks)); ok {
				report(c.planner.ToggleTask(tasks[i].ID), "Task updated")
			}
		case "d":
			if i, ok := c.pick("Task", len(tasks)); ok {
				report(c.planner.DeleteTask(tasks[i].ID), "Task deleted")
			}
		case "f":
			cats := c.planner.TaskCategories()
			for i, cat := range cats {
				fmt.Printf("  %d. %s\n", i+1, cat)
			}
			if i, ok := c.pick("Category", len(cats)); ok {
				category = cats[i]
			}
		default:
			fmt.Println("Invalid command.")
		}
	}
}

func (c *cli) guestsMenu(ctx context.Context) {
	term := ""
	for {
		guests := c.planner.SearchGuests(term)
		counts := c.planner.GuestCounts()

		fmt.Printf("\n📋 Guests (%d total, %d confirmed, %d pending, %d declined):\n",
			counts.Total, counts.Confirmed, counts.Pending, counts.Declined)
		divider()
		for i, g := range guests {
			extra := ""
			if g.PlusOne {
				extra += " +1"
			}
			if g.Dietary != "" {
				extra += " [" + g.Dietary + "]"
			}
			fmt.Printf("%2d. %s | %s%s %s\n", i+1, g.Name, g.Status, extra, g.Phone)
		}
		divider()
		fmt.Println("  a. Add  s. Set status  i. Send invitation  d. Delete  f. Search  b. Back")

		cmd, ok := c.prompt("> ")
		if !ok || cmd == "b" {
			return
		}

		switch cmd {
		case "a":
			name, _ := c.prompt("Name: ")
			plus, _ := c.prompt("Plus one? (y/N): ")
			dietary, _ := c.prompt("Dietary notes: ")
			phone, _ := c.prompt("Phone (optional): ")
			_, err := c.planner.AddGuest(planner.GuestInput{
				Name:    name,
				PlusOne: strings.EqualFold(plus, "y"),
				Dietary: dietary,
				Phone:   phone,
			})
			report(err, "Guest added")
		case "s":
			i, ok := c.pick("Guest", len(guests))
			if !ok {
				continue
			}
			for j, s := range models.GuestStatuses {
				fmt.Printf("  %d. %s\n", j+1, s)
			}
			if j, ok := c.pick("Status", len(models.GuestStatuses)); ok {
				report(c.planner.SetGuestStatus(guests[i].ID, models.GuestStatuses[j]), "Status updated")
			}
		case "i":
			if c.rsvp == nil {
				fmt.Println("WhatsApp is not enabled (set WHATSAPP_ENABLED=true).")
				continue
			}
			if i, ok := c.pick("Guest", len(guests)); ok {
				fmt.Printf("\nSending invitation to %s...\n", guests[i].Name)
				report(c.rsvp.SendInvitation(ctx, guests[i].ID), "Invitation sent")
			}
		case "d":
			if i, ok := c.pick("Guest", len(guests)); ok {
				report(c.planner.DeleteGuest(guests[i].ID), "Guest removed")
			}
		case "f":
			term, _ = c.prompt("Search (blank for all): ")
		default:
			fmt.Println("Invalid command.")
		}
	}
}

func (c *cli) budgetMenu(ctx context.Context) {
	for {
		s := c.planner.BudgetSummary()
		expenses := c.planner.ExpensesByCost()

		fmt.Printf("\n💰 Budget: $%.2f of $%.2f (%d%%), paid $%.2f, left $%.2f\n",
			s.TotalCost, s.Goal, s.UsagePercent, s.TotalPaid, s.Remaining)
		divider()
		for i, e := range expenses {
			fmt.Printf("%2d. %-24s %-9s $%10.2f  %-14s $%.2f due\n", i+1, e.Item, e.Category, e.Cost, e.Status, e.Remaining())
		}
		divider()
		for _, ct := range c.planner.CategoryBreakdown() {
			fmt.Printf("  %-9s $%.2f\n", ct.Category, ct.Total)
		}
		fmt.Println("  a. Add  d. Delete  g. Set goal  b. Back")

		cmd, ok := c.prompt("> ")
		if !ok || cmd == "b" {
			return
		}

		switch cmd {
		case "a":
			c.addExpense(ctx)
		case "d":
			if i, ok := c.pick("Expense", len(expenses)); ok {
				report(c.planner.DeleteExpense(expenses[i].ID), "Expense deleted")
			}
		case "g":
			if goal, ok := c.promptNumber("New goal: "); ok {
				report(c.planner.SetBudgetGoal(goal), "Goal updated")
			}
		default:
			fmt.Println("Invalid command.")
		}
	}
}

func (c *cli) addExpense(ctx context.Context) {
	item, _ := c.prompt("Item: ")
	fmt.Printf("Categories: %s\n", strings.Join(models.ExpenseCategories, ", "))
	category, _ := c.prompt("Category (blank for Venue): ")
	cost, ok := c.promptNumber("Cost: ")
	if !ok {
		return
	}
	paid, ok := c.promptNumber("Paid so far: ")
	if !ok {
		return
	}
	contact, _ := c.prompt("Vendor contact name: ")
	phone, _ := c.prompt("Vendor phone: ")
	email, _ := c.prompt("Vendor email: ")

	in := planner.ExpenseInput{
		Item:         item,
		Category:     category,
		Cost:         cost,
		Paid:         paid,
		ContactName:  contact,
		ContactPhone: phone,
		ContactEmail: email,
	}

	picker := capture.FileImagePicker{ReadPath: func() (string, error) {
		fmt.Print("Receipt image path (blank to skip): ")
		return c.readLine()
	}}
	uri, err := picker.Pick(ctx)
	switch {
	case err == nil:
		in.ImageURL = uri
	case !errors.Is(err, capture.ErrCancelled):
		fmt.Printf("❌ %v\n", err)
	}

	_, err = c.planner.AddExpense(in)
	report(err, "Expense added")
}

func (c *cli) giftsMenu() {
	for {
		s := c.planner.GiftSummary()
		money := c.planner.FinancialGifts()
		gifts := c.planner.WeddingGifts()

		fmt.Printf("\n🎁 Gifts: $%.2f from %d gifts, %d presents, %d/%d thanked (%d%%)\n",
			s.FinancialTotal, s.FinancialCount, s.PhysicalCount, s.ThankedCount, s.PhysicalCount, s.ThankYouProgress)
		divider()
		fmt.Println("Money:")
		for i, g := range money {
			fmt.Printf("%2d. %-20s $%10.2f  %-8s %s\n", i+1, g.GiverName, g.Amount, g.Type, g.Date)
		}
		fmt.Println("Presents:")
		for i, g := range gifts {
			mark := " "
			if g.Thanked {
				mark = "✉"
			}
			fmt.Printf("%2d. [%s] %s from %s (%s)\n", i+1, mark, g.ItemName, g.GiverName, g.Date)
		}
		divider()
		fmt.Println("  m. Add money  p. Add present  t. Toggle thanked  x. Delete money  y. Delete present  b. Back")

		cmd, ok := c.prompt("> ")
		if !ok || cmd == "b" {
			return
		}

		switch cmd {
		case "m":
			giver, _ := c.prompt("From: ")
			amount, ok := c.promptNumber("Amount: ")
			if !ok {
				continue
			}
			kind, _ := c.prompt(fmt.Sprintf("Type (%s, blank for Cash): ", giftTypeList()))
			notes, _ := c.prompt("Notes: ")
			_, err := c.planner.AddFinancialGift(planner.FinancialGiftInput{
				GiverName: giver, Amount: amount, Type: parseGiftType(kind), Notes: notes,
			})
			report(err, "Gift recorded")
		case "p":
			giver, _ := c.prompt("From: ")
			item, _ := c.prompt("Gift: ")
			_, err := c.planner.AddWeddingGift(planner.WeddingGiftInput{GiverName: giver, ItemName: item})
			report(err, "Gift recorded")
		case "t":
			if i, ok := c.pick("Present", len(gifts)); ok {
				report(c.planner.ToggleThanked(gifts[i].ID), "Updated")
			}
		case "x":
			if i, ok := c.pick("Gift", len(money)); ok {
				report(c.planner.DeleteFinancialGift(money[i].ID), "Deleted")
			}
		case "y":
			if i, ok := c.pick("Present", len(gifts)); ok {
				report(c.planner.DeleteWeddingGift(gifts[i].ID), "Deleted")
			}
		default:
			fmt.Println("Invalid command.")
		}
	}
}

func giftTypeList() string {
	names := make([]string, len(models.GiftTypes))
	for i, t := range models.GiftTypes {
		names[i] = string(t)
	}
	return strings.Join(names, "/")
}

// parseGiftType matches a known type case-insensitively; anything else is
// passed through for validation to reject
func parseGiftType(raw string) models.GiftType {
	for _, t := range models.GiftTypes {
		if strings.EqualFold(raw, string(t)) {
			return t
		}
	}
	return models.GiftType(raw)
}

func (c *cli) moodboardMenu(ctx context.Context) {
	for {
		images := c.planner.Moodboard()
		fmt.Printf("\n🖼  Moodboard (%d images):\n", len(images))
		divider()
		for i, img := range images {
			fmt.Printf("%2d. %s (%d bytes)\n", i+1, img.Prompt, len(img.URL))
		}
		divider()
		fmt.Println("  a. Add images  d. Delete  b. Back")

		cmd, ok := c.prompt("> ")
		if !ok || cmd == "b" {
			return
		}

		switch cmd {
		case "a":
			raw, _ := c.prompt("Image paths (comma separated): ")
			var paths []string
			for _, p := range strings.Split(raw, ",") {
				if p = strings.Trim(strings.TrimSpace(p), `"'`); p != "" {
					paths = append(paths, p)
				}
			}
			loaded, err := capture.LoadMoodImages(ctx, paths)
			if err != nil {
				fmt.Printf("❌ %v\n", err)
				continue
			}
			added := c.planner.AddMoodImages(loaded)
			fmt.Printf("✅ Added %d images\n", len(added))
		case "d":
			if i, ok := c.pick("Image", len(images)); ok {
				report(c.planner.DeleteMoodImage(images[i].ID), "Image removed")
			}
		default:
			fmt.Println("Invalid command.")
		}
	}
}

func (c *cli) settingsMenu() {
	fmt.Printf("\nWedding date: %s\nWedding email: %s\n", c.planner.WeddingDate(), c.planner.WeddingEmail())

	if date, ok := c.prompt("New date YYYY-MM-DD (blank to keep): "); ok && date != "" {
		report(c.planner.SetWeddingDate(date), "Date saved")
	}
	if email, ok := c.prompt("New email (blank to keep): "); ok && email != "" {
		report(c.planner.SetWeddingEmail(email), "Email saved")
	}
}

func (c *cli) chat(ctx context.Context) {
	fmt.Println("\n💬 Chat with your planner. Commands: /photo, /remove, /voice, /back")
	for _, m := range c.session.Transcript() {
		printTurn(m)
	}

	picker := capture.FileImagePicker{ReadPath: func() (string, error) {
		fmt.Print("Image path: ")
		return c.readLine()
	}}

	for {
		label := "you> "
		if c.session.Image() != "" {
			label = "you [📷]> "
		}
		line, ok := c.prompt(label)
		if !ok {
			return
		}

		switch line {
		case "/back":
			return
		case "/photo":
			if err := c.session.Attach(ctx, picker); err != nil && !errors.Is(err, capture.ErrCancelled) {
				fmt.Printf("❌ %v\n", err)
			}
			continue
		case "/remove":
			c.session.RemoveImage()
			continue
		case "/voice":
			heard, err := c.listen(ctx)
			switch {
			case errors.Is(err, advice.ErrVoiceUnsupported):
				fmt.Println("Voice not supported")
			case err != nil:
				fmt.Printf("❌ %v\n", err)
			case heard != "":
				fmt.Printf("(heard) %s\nPress Enter to send it, or type to replace it.\n", heard)
			}
			continue
		}

		fmt.Println("planner is typing...")
		reply, err := c.submitLine(ctx, line)
		switch {
		case errors.Is(err, advice.ErrNothingToSend):
			continue
		case errors.Is(err, advice.ErrBusy):
			fmt.Println("Still waiting for the last reply...")
			continue
		case err != nil:
			fmt.Printf("❌ %v\n", err)
			continue
		}
		printTurn(reply)
		if c.assistantPaused() {
			fmt.Println("(the assistant is paused after repeated failures; try again in a minute)")
		}
	}
}

// listen puts a transcription into the pending input without sending it
func (c *cli) listen(ctx context.Context) (string, error) {
	if err := c.session.Listen(ctx, c.voice); err != nil {
		return "", err
	}
	return c.session.Input(), nil
}

// submitLine sends line, or the pending input when line is blank
func (c *cli) submitLine(ctx context.Context, line string) (models.ChatMessage, error) {
	if line != "" {
		c.session.SetInput(line)
	}
	return c.session.Send(ctx)
}

func (c *cli) assistantPaused() bool {
	return c.breaker != nil && c.breaker.State() == "open"
}

// recognizer picks the speech source named by VOICE_INPUT
func (c *cli) recognizer(mode string) advice.SpeechRecognizer {
	if mode != "line" {
		return capture.UnsupportedRecognizer{}
	}
	return capture.LineRecognizer{ReadLine: func() (string, error) {
		fmt.Print("🎙  dictate> ")
		return c.readLine()
	}}
}

func printTurn(m models.ChatMessage) {
	if m.Role == models.RoleUser {
		fmt.Printf("you: %s\n", m.Text)
		return
	}
	fmt.Printf("planner: %s\n", m.Text)
}
