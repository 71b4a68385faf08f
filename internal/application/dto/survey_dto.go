package dto

// SaveStepAnswersRequest respostas de um passo do wizard.
type SaveStepAnswersRequest struct {
	Answers []StepAnswer `json:"answers"`
}

// StepAnswer uma resposta: pergunta + valor escolhido em {0,1,3,5}.
type StepAnswer struct {
	QuestionKey string `json:"question_key"`
	OptionValue string `json:"option_value"`
}

// StepWithQuestionsResponse conteúdo de um passo para o wizard.
type StepWithQuestionsResponse struct {
	Step      StepInfo       `json:"step"`
	Questions []StepQuestion `json:"questions"`
}

// StepInfo cabeçalho do passo.
type StepInfo struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// StepQuestion pergunta com opções e a seleção prévia do seller, se houver.
type StepQuestion struct {
	Key      string           `json:"key"`
	Label    string           `json:"label"`
	Order    int              `json:"order"`
	Options  []QuestionOption `json:"options"`
	Selected string           `json:"selected,omitempty"`
}

// QuestionOption opção selecionável.
type QuestionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// ResultsResponse resultados agregados por dimensão + índice geral.
type ResultsResponse struct {
	Dimensions   []DimensionResult `json:"dimensions"`
	GeneralIndex float64           `json:"general_index"`
}

// DimensionResult agregado de um passo:
//   - AverageScore: média sobre as perguntas respondidas, 2 casas;
//   - MaxScore: maior score atingível do passo (5 se não houver opções);
//   - QuestionCount/AnsweredCount: totais para a barra de progresso.
type DimensionResult struct {
	Key           string  `json:"key"`
	Title         string  `json:"title"`
	Order         int     `json:"order"`
	AverageScore  float64 `json:"average_score"`
	MaxScore      int     `json:"max_score"`
	QuestionCount int     `json:"question_count"`
	AnsweredCount int     `json:"answered_count"`
}
