// Package i18n localizes reshape issue messages.
package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "tag" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_data_type":
			return withDetail("不明なデータ型です", data["tag"])
		case "missing_nested":
			return "object/array には nestedData が必要です"
		case "unexpected_nested":
			return "プリミティブ型に nestedData は指定できません"
		case "duplicate_key":
			return withDetail("キーが重複しています", data["key"])
		case "schema_cycle":
			return "スキーマが自身を参照しています"
		case "invalid_type":
			return withDetail("型が不正です", data["expected"])
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		case "max_depth":
			return "最大深度を超えました"
		case "source_path_error":
			return withDetail("パス式が空です", data["source"])
		case "no_wildcard":
			return withDetail("配列のソースに * がありません", data["source"])
		case "source_no_data":
			return withDetail("配列のソースにデータがありません", data["source"])
		}
	default: // "en"
		switch code {
		case "invalid_data_type":
			return withDetail("unknown data type", data["tag"])
		case "missing_nested":
			return "object and array fields require nestedData"
		case "unexpected_nested":
			return "primitive fields must not carry nestedData"
		case "duplicate_key":
			return withDetail("duplicate key", data["key"])
		case "schema_cycle":
			return "schema map contains itself"
		case "invalid_type":
			return withDetail("invalid type", data["expected"])
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		case "max_depth":
			return "max depth exceeded"
		case "source_path_error":
			return withDetail("empty source path", data["source"])
		case "no_wildcard":
			return withDetail("array source lacks a trailing *", data["source"])
		case "source_no_data":
			return withDetail("array source has no data", data["source"])
		}
	}
	return code
}

func withDetail(msg, detail string) string {
	if detail == "" {
		return msg
	}
	return msg + ": " + detail
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
