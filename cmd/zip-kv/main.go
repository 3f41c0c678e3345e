// zip-kv：交互式维护 PostgreSQL 中的邮编表；服务以 ZIP_TABLE_SOURCE=postgres 启动时读取，修改需重启生效
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
	"zip-api/internal/migrate"
	"zip-api/internal/store"
	"zip-api/internal/utils"
	"zip-api/internal/ziptable"

	"github.com/joho/godotenv"
)

// parseSet：解析 "<zip> <City, State>"；城市可含空格
func parseSet(args string) (ziptable.Entry, error) {
	args = strings.TrimSpace(args)
	zip, rest, ok := strings.Cut(args, " ")
	if !ok || zip == "" {
		return ziptable.Entry{}, errors.New("usage: set <zip> <City, State>")
	}
	city, state, ok := strings.Cut(strings.TrimSpace(rest), ", ")
	if !ok || city == "" || state == "" {
		return ziptable.Entry{}, errors.New("usage: set <zip> <City, State>")
	}
	return ziptable.Entry{Zip: zip, City: city, State: state}, nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  set <zip> <City, State>")
	fmt.Fprintln(w, "  del <zip>")
	fmt.Fprintln(w, "  get <zip>")
	fmt.Fprintln(w, "  list [limit]")
	fmt.Fprintln(w, "  seed            write the built-in table")
	fmt.Fprintln(w, "  export          print all rows as yaml")
	fmt.Fprintln(w, "  help")
	fmt.Fprintln(w, "  exit")
}

// exec：执行一行命令；返回 false 表示退出
func exec(ctx context.Context, st *store.Store, line string, w io.Writer) bool {
	cmd, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch strings.ToLower(cmd) {
	case "":
	case "exit", "quit":
		return false
	case "help":
		printHelp(w)
	case "set", "add":
		e, err := parseSet(args)
		if err != nil {
			fmt.Fprintln(w, err)
			return true
		}
		report(w, st.UpsertZip(ctx, e))
	case "del":
		if args == "" {
			fmt.Fprintln(w, "usage: del <zip>")
			return true
		}
		report(w, st.DeleteZip(ctx, strings.TrimSpace(args)))
	case "get":
		if args == "" {
			fmt.Fprintln(w, "usage: get <zip>")
			return true
		}
		e, err := st.GetZip(ctx, strings.TrimSpace(args))
		if err != nil {
			fmt.Fprintln(w, "error:", err)
			return true
		}
		fmt.Fprintf(w, "%s -> %s\n", e.Zip, e.Display())
	case "list":
		limit := 20
		if n, e := strconv.Atoi(strings.TrimSpace(args)); e == nil && n > 0 {
			limit = n
		}
		xs, err := st.ListZips(ctx, limit)
		if err != nil {
			fmt.Fprintln(w, "error:", err)
			return true
		}
		for _, e := range xs {
			fmt.Fprintf(w, "%s -> %s\n", e.Zip, e.Display())
		}
	case "seed":
		n := 0
		for _, e := range ziptable.Default().Entries() {
			if err := st.UpsertZip(ctx, e); err != nil {
				fmt.Fprintln(w, "error:", err)
				return true
			}
			n++
		}
		fmt.Fprintf(w, "ok (%d)\n", n)
	case "export":
		tb, err := st.LoadTable(ctx)
		if err != nil {
			fmt.Fprintln(w, "error:", err)
			return true
		}
		b, err := ziptable.Encode(tb.Entries())
		if err != nil {
			fmt.Fprintln(w, "error:", err)
			return true
		}
		_, _ = w.Write(b)
	default:
		fmt.Fprintln(w, "unknown command")
	}
	return true
}

func report(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintln(w, "error:", err)
		return
	}
	fmt.Fprintln(w, "ok")
}

func main() {
	envFile := ".env"
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--env" && i+1 < len(os.Args) {
			envFile = os.Args[i+1]
			i++
		} else if strings.HasSuffix(os.Args[i], ".env") {
			envFile = os.Args[i]
		}
	}
	_ = godotenv.Load(envFile)
	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		fmt.Println("db error:", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := migrate.EnsureSchema(db); err != nil {
		fmt.Println("schema error:", err)
		os.Exit(1)
	}
	st := store.AttachDB(db)
	ctx := context.Background()
	fmt.Println("zip kv cli ready")
	printHelp(os.Stdout)
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		if !exec(ctx, st, in.Text(), os.Stdout) {
			return
		}
	}
}
