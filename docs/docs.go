// Package docs 由 swag 產生的 API 文件
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/recommendations": {
            "post": {
                "description": "依歷史開獎頻率加權抽樣，產生不與歷史一等獎重複的組合",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recommendation"],
                "summary": "產生推薦號碼",
                "parameters": [
                    {
                        "description": "組數與固定號碼",
                        "name": "data",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.RecommendRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "推薦結果",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.Recommendation"}}}
                            ]
                        }
                    },
                    "400": {"description": "參數錯誤", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "503": {"description": "無法取得歷史資料", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/api/v1/analysis": {
            "get": {
                "description": "返回出現次數、排序、候選號碼、排除號碼與抽樣權重",
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "候選池分析",
                "responses": {
                    "200": {
                        "description": "分析結果",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.AnalysisReport"}}}
                            ]
                        }
                    },
                    "503": {"description": "無法取得歷史資料", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/api/v1/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "歷史資料摘要",
                "responses": {
                    "200": {
                        "description": "摘要",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.HistorySummary"}}}
                            ]
                        }
                    },
                    "503": {"description": "無法取得歷史資料", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/api/v1/history/refresh": {
            "post": {
                "description": "從最新期數的下一期開始抓取，抓取錯誤記錄在報告中",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "線上抓取新開獎",
                "responses": {
                    "200": {
                        "description": "抓取報告",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/history.RefreshReport"}}}
                            ]
                        }
                    },
                    "400": {"description": "未啟用線上抓取", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "取得應用版本資訊",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.BuildInfo"}}
                }
            }
        }
    },
    "definitions": {
        "analysis.Draw": {
            "type": "object",
            "properties": {
                "round": {"type": "integer"},
                "numbers": {"type": "array", "items": {"type": "integer"}},
                "date": {"type": "string"}
            }
        },
        "history.RefreshReport": {
            "type": "object",
            "properties": {
                "from": {"type": "integer"},
                "fetched": {"type": "integer"},
                "stopped_at": {"type": "integer"},
                "draws": {"type": "array", "items": {"$ref": "#/definitions/analysis.Draw"}},
                "error": {"type": "string"}
            }
        },
        "service.RecommendRequest": {
            "type": "object",
            "properties": {
                "game_count": {"type": "integer", "maximum": 10, "minimum": 1},
                "fixed_numbers": {"type": "array", "maxItems": 5, "items": {"type": "integer"}}
            }
        },
        "service.Game": {
            "type": "object",
            "properties": {
                "numbers": {"type": "array", "items": {"type": "integer"}},
                "colors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "service.Recommendation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "games": {"type": "array", "items": {"$ref": "#/definitions/service.Game"}},
                "fixed_numbers": {"type": "array", "items": {"type": "integer"}},
                "dropped": {"type": "array", "items": {"type": "integer"}},
                "history_count": {"type": "integer"},
                "attempts": {"type": "integer"},
                "requested": {"type": "integer"},
                "exhausted": {"type": "boolean"},
                "generated_at": {"type": "string"}
            }
        },
        "service.AnalysisReport": {
            "type": "object",
            "properties": {
                "frequencies": {"type": "object", "additionalProperties": {"type": "integer"}},
                "ranked": {"type": "array", "items": {"type": "integer"}},
                "survivors": {"type": "array", "items": {"type": "integer"}},
                "dropped": {"type": "array", "items": {"type": "integer"}},
                "boosted": {"type": "array", "items": {"type": "integer"}},
                "weights": {"type": "object", "additionalProperties": {"type": "integer"}},
                "max_count": {"type": "integer"},
                "draw_count": {"type": "integer"},
                "latest_round": {"type": "integer"},
                "analyzed_from": {"type": "string"}
            }
        },
        "service.HistorySummary": {
            "type": "object",
            "properties": {
                "draw_count": {"type": "integer"},
                "distinct_tuples": {"type": "integer"},
                "latest_round": {"type": "integer"},
                "loaded_at": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "utils.BuildInfo": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "build_time": {"type": "string"},
                "git_hash": {"type": "string"},
                "go_version": {"type": "string"}
            }
        },
        "utils.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "lotto_service API",
	Description:      "加權號碼推薦服務",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
