// quizcli takes the monthly exam from a terminal: it loads the routine and
// the live paper from a quizd instance, renders the questions, runs the
// countdown, and submits — automatically when time runs out.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphaquiz/monthlyquiz/internal/identity"
	"github.com/alphaquiz/monthlyquiz/internal/quizbank"
	"github.com/alphaquiz/monthlyquiz/internal/schedule"
	"github.com/alphaquiz/monthlyquiz/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	server := flag.String("server", "http://localhost:8080", "quizd base URL")
	idPath := flag.String("identity", "", "identity file (default: user config dir)")
	flag.Parse()

	ids, err := identity.NewStore(*idPath)
	if err != nil {
		log.Fatalf("identity store: %v", err)
	}
	stdin := bufio.NewScanner(os.Stdin)

	id := ids.Load()
	id = ensureIdentity(stdin, ids, id)

	c := newClient(*server)
	ctx := context.Background()

	sched, err := c.schedule(ctx)
	if err != nil {
		log.Fatalf("load schedule: %v", err)
	}
	printSchedule(sched)

	ex, err := c.exam(ctx)
	if err != nil {
		log.Fatalf("load exam: %v", err)
	}
	if ex.Phase != "live" {
		printIdle(ex)
		return
	}
	if ex.Paper == nil {
		// A static host serves only the raw bank files; derive the paper
		// locally from /quizdata before giving up.
		if p := fetchPaper(ctx, *server, sched, ex.Today); p != nil {
			ex.Paper = p
			ex.PaperInfo = fmt.Sprintf("Paper: %s — %d MCQ — %d min",
				p.PaperID, len(p.Questions), ex.Today.DurationMin)
		}
	}
	if ex.Paper == nil {
		fmt.Println(ex.Message)
		fmt.Println("The countdown still runs; there is just nothing to answer.")
		waitOut(ex.Today.End)
		return
	}

	fmt.Printf("\n%s — Exam\n%s\n\n", ex.Today.Subject.Name, ex.PaperInfo)
	printPaper(*ex.Paper)

	fmt.Print("Password (any, min 4 chars — identifies this sitting): ")
	password := readLine(stdin)
	if err := c.login(ctx, id.Name, id.Email, password); err != nil {
		log.Fatalf("login: %v", err)
	}

	runExam(c, ex, id, stdin)
}

// fetchPaper pulls the subject's bank straight from /quizdata/{file} and
// picks today's paper with the same seed the server uses.
func fetchPaper(ctx context.Context, base string, sched scheduleResponse, today *todayView) *quizbank.Paper {
	seed := schedule.PaperSeed(sched.Year, time.Month(sched.Month), today.Day, today.Subject.ID)
	p, err := quizbank.Load(ctx, quizbank.NewHTTPSource(base), today.Subject.File, seed)
	if err != nil {
		return nil
	}
	stripped := p.StripAnswers()
	return &stripped
}

func ensureIdentity(stdin *bufio.Scanner, ids *identity.Store, id identity.Identity) identity.Identity {
	changed := false
	if id.Name == "" {
		fmt.Print("Your name: ")
		id.Name = readLine(stdin)
		changed = true
	}
	if id.Email == "" {
		fmt.Print("Your email: ")
		id.Email = readLine(stdin)
		changed = true
	}
	if changed {
		if err := ids.Save(id); err != nil {
			log.Printf("could not save identity: %v", err)
		}
	}
	return id
}

func runExam(c *client, ex examResponse, id identity.Identity, stdin *bufio.Scanner) {
	var (
		mu      sync.Mutex
		chosen  = map[string]int{}
		printMu sync.Mutex
	)
	answers := func() quizbank.Answers {
		mu.Lock()
		defer mu.Unlock()
		out := quizbank.Answers{}
		for k, v := range chosen {
			out[k] = v
		}
		return out
	}
	submit := func(ctx context.Context, ans quizbank.Answers, auto bool) error {
		res, err := c.submit(ctx, submitRequest{
			SubjectID: ex.Today.Subject.ID,
			Answers:   ans,
			Auto:      auto,
			Name:      id.Name,
			Email:     id.Email,
		})
		printMu.Lock()
		defer printMu.Unlock()
		if err != nil {
			fmt.Println("\nSubmission Failed")
			fmt.Println("There was an error sending your answers. Try again — or check your connection.")
			return err
		}
		fmt.Println("\nSubmission Received")
		fmt.Printf("Thanks, %s — your answers were submitted.\n", id.Name)
		fmt.Printf("Score (if computed): %v\n", res.Score)
		return nil
	}

	lastShown := -1
	onTick := func(s session.State, remaining time.Duration) {
		sec := int(remaining / time.Second)
		if sec == lastShown {
			return
		}
		lastShown = sec
		printMu.Lock()
		switch s {
		case session.StatePending:
			fmt.Printf("\rStarts in %s   ", session.FormatClock(remaining))
		case session.StateRunning:
			fmt.Printf("\r%s  (q<num> <option> to answer, 'submit' to finish) ", session.FormatClock(remaining))
		default:
			fmt.Print("\r--:--                                               \n")
		}
		printMu.Unlock()
	}

	ctrl := session.New(ex.Today.Start, ex.Today.End, answers, submit, session.WithOnTick(onTick))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- ctrl.Run(ctx) }()

	lines := make(chan string)
	go func() {
		for stdin.Scan() {
			lines <- strings.TrimSpace(stdin.Text())
		}
		close(lines)
	}()

	for {
		select {
		case err := <-done:
			if err != nil && ctx.Err() == nil {
				log.Printf("exam ended with error: %v", err)
			}
			return
		case line, ok := <-lines:
			if !ok {
				cancel()
				<-done
				return
			}
			switch {
			case line == "submit":
				if err := ctrl.ManualSubmit(ctx); err != nil {
					fmt.Printf("cannot submit: %v\n", err)
				}
			case line == "quit":
				cancel()
				<-done
				return
			default:
				applyAnswer(ex.Paper, line, &mu, chosen)
			}
		}
	}
}

// applyAnswer parses "q3 b" / "3 2" into a choice for question 3.
func applyAnswer(p *quizbank.Paper, line string, mu *sync.Mutex, chosen map[string]int) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		fmt.Println("answer with: <question number> <option letter or number>")
		return
	}
	qn, err := strconv.Atoi(strings.TrimPrefix(fields[0], "q"))
	if err != nil || qn < 1 || qn > len(p.Questions) {
		fmt.Println("no such question")
		return
	}
	q := p.Questions[qn-1]
	opt := -1
	if n, err := strconv.Atoi(fields[1]); err == nil {
		opt = n - 1
	} else if len(fields[1]) == 1 {
		opt = int(strings.ToLower(fields[1])[0] - 'a')
	}
	if opt < 0 || opt >= len(q.Options) {
		fmt.Println("no such option")
		return
	}
	mu.Lock()
	chosen[q.ID] = opt
	mu.Unlock()
	fmt.Printf("Q%d → %s\n", qn, q.Options[opt])
}

func printPaper(p quizbank.Paper) {
	for i, q := range p.Questions {
		fmt.Printf("%d. %s\n", i+1, q.Text)
		for oi, opt := range q.Options {
			fmt.Printf("   %c) %s\n", 'a'+oi, opt)
		}
	}
	fmt.Println()
}

func printSchedule(s scheduleResponse) {
	if !s.Published {
		fmt.Println("Routine will be published soon")
		fmt.Printf("Routine will be published on %s\n", s.PublishOn)
		return
	}
	fmt.Println("Published routine (visible 20 days before exams)")
	for _, e := range s.Entries {
		fmt.Printf("  %2d %s  %s\n", e.Day, time.Month(s.Month), e.Subject.Name)
	}
	fmt.Printf("Exam window: %d → %d (last 10 days of month). Exams start daily at 9:00 PM (Dhaka).\n",
		s.StartDay, s.LastDay)
}

func printIdle(ex examResponse) {
	switch {
	case ex.Today == nil:
		fmt.Println("No exam scheduled today.")
	case ex.Phase == "pending":
		fmt.Printf("Today's subject: %s. The exam starts at %s.\n",
			ex.Today.Subject.Name, ex.Today.Start.Local().Format("15:04"))
	default:
		fmt.Printf("Today's exam (%s) is already over.\n", ex.Today.Subject.Name)
	}
}

func waitOut(end time.Time) {
	for {
		left := time.Until(end)
		if left <= 0 {
			fmt.Print("\r--:--\n")
			return
		}
		fmt.Printf("\r%s ", session.FormatClock(left))
		time.Sleep(500 * time.Millisecond)
	}
}

func readLine(sc *bufio.Scanner) string {
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}
