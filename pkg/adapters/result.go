package adapters

// QueryResult wraps a read for clients that render loading and error states.
type QueryResult[T any] struct {
	Data      *T     `json:"data"`
	Error     string `json:"error,omitempty"`
	IsLoading bool   `json:"is_loading"`
}

// ToQueryResult reports loading while there is neither data nor an error.
func ToQueryResult[T any](data *T, err error) QueryResult[T] {
	r := QueryResult[T]{Data: data}
	if err != nil {
		r.Error = err.Error()
	}
	r.IsLoading = data == nil && err == nil
	return r
}

// MutationResult is the outcome of a write.
type MutationResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ToMutationResult(id string, err error) MutationResult {
	if err != nil {
		return MutationResult{Success: false, ID: id, Error: err.Error()}
	}
	return MutationResult{Success: true, ID: id}
}
