// seed_survey popula a estrutura do questionário (passos, perguntas, opções)
// a partir do CSV de dimensões do time comercial.
//
// Uso: go run ./cmd/seed_survey [-latin1] [caminho/unlock-index.csv]
// Por padrão procura unlock-index.csv no diretório atual.
//
// Colunas esperadas: Dimensão, Pergunta, Nível 1, Nível 3, Nível 5.
// Cada pergunta recebe as opções 1/3/5 do CSV mais a opção fixa
// "Não sei informar" (valor 0). Tudo é upsert: rodar de novo atualiza.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
	"github.com/inventa-shop/unlock-survey-api/internal/infrastructure/postgres"
	"github.com/inventa-shop/unlock-survey-api/pkg/config"
)

// orderedDimensions ordem fixa dos passos; dimensões fora da lista são erro.
var orderedDimensions = []string{"Payments", "Warehouse", "Delivery", "CX", "Analytics", "Organização"}

func main() {
	latin1 := flag.Bool("latin1", false, "CSV em ISO-8859-1 (exportado do Excel) em vez de UTF-8")
	flag.Parse()

	csvPath := "unlock-index.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("carregar configuração: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexão ao PostgreSQL: %v", err)
	}
	defer pool.Close()
	repo := postgres.NewSurveyRepository(pool)

	rows, err := readCSV(csvPath, *latin1)
	if err != nil {
		fail("ler CSV: %v", err)
	}

	// Agrupa as perguntas por dimensão preservando a ordem do CSV.
	byDim := make(map[string][]map[string]string)
	for _, row := range rows {
		dim := strings.TrimSpace(row["Dimensão"])
		if dim == "" {
			continue
		}
		byDim[dim] = append(byDim[dim], row)
	}

	var steps, questions int
	for order, dim := range orderedDimensions {
		step := &entity.SurveyStep{
			Key:      slugify(dim),
			Title:    dim,
			Order:    order + 1,
			IsActive: true,
		}
		if err := repo.UpsertStep(ctx, step); err != nil {
			fail("passo %q: %v", dim, err)
		}
		steps++

		qOrder := 1
		for _, row := range byDim[dim] {
			pergunta := strings.TrimSpace(row["Pergunta"])
			if pergunta == "" {
				continue
			}

			q := &entity.Question{
				Key:      fmt.Sprintf("%s-%02d", step.Key, qOrder),
				Label:    capitalizeFirst(pergunta),
				IsActive: true,
			}
			if err := repo.UpsertQuestion(ctx, q); err != nil {
				fail("pergunta %q: %v", q.Key, err)
			}

			opts := []entity.QuestionOption{
				{QuestionID: q.ID, Value: "1", Label: strings.TrimSpace(row["Nível 1"]), Order: 1, Score: 1, IsActive: true},
				{QuestionID: q.ID, Value: "3", Label: strings.TrimSpace(row["Nível 3"]), Order: 2, Score: 3, IsActive: true},
				{QuestionID: q.ID, Value: "5", Label: strings.TrimSpace(row["Nível 5"]), Order: 3, Score: 5, IsActive: true},
				{QuestionID: q.ID, Value: "0", Label: "Não sei informar", Order: 4, Score: 0, IsActive: true},
			}
			for i := range opts {
				if opts[i].Label == "" {
					fail("pergunta %s (%s): opção de valor %s sem label no CSV", q.Key, dim, opts[i].Value)
				}
				opts[i].Label = capitalizeFirst(opts[i].Label)
				if err := repo.UpsertOption(ctx, &opts[i]); err != nil {
					fail("opção %s/%s: %v", q.Key, opts[i].Value, err)
				}
			}

			sq := &entity.StepQuestion{StepID: step.ID, QuestionID: q.ID, Order: qOrder, Required: true}
			if err := repo.UpsertStepQuestion(ctx, sq); err != nil {
				fail("vínculo %s↔%s: %v", step.Key, q.Key, err)
			}
			questions++
			qOrder++
		}
	}

	fmt.Printf("Seed concluído: %d passos, %d perguntas\n", steps, questions)
}

// readCSV lê o arquivo e devolve um map por linha, chaveado pelos headers.
func readCSV(path string, latin1 bool) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in io.Reader = f
	if latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := records[0]
	// BOM no primeiro header quando o arquivo vem do Excel em UTF-8.
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	out := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		empty := true
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			v := ""
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			if v != "" {
				empty = false
			}
			row[h] = v
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out, nil
}

// slugify remove acentos e troca sequências não alfanuméricas por hífen.
// Ex: "Organização" → "organizacao"
func slugify(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.ToLower(b.String())

	var slug strings.Builder
	lastHyphen := true
	for _, r := range out {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			slug.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			slug.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(slug.String(), "-")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
