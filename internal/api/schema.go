package api

import "quote-engine/internal/common/validation"

const quoteInputSchemaJSON = `{
	"type": "object",
	"required": ["equipment"],
	"properties": {
		"profile": {
			"type": "object",
			"properties": {
				"householdSize": {"type": "integer", "minimum": 0},
				"bimonthlyBill": {"type": "number", "minimum": 0},
				"acUsage": {"type": "string", "enum": ["", "none", "minimal", "moderate", "heavy"]},
				"hasElectricHotWater": {"type": "boolean"},
				"evCount": {"type": "integer", "minimum": 0},
				"evChargerKw": {"type": "number", "minimum": 0},
				"evChargingHours": {"type": "number", "minimum": 0, "maximum": 24},
				"evChargingTime": {"type": "string", "enum": ["", "daytime", "evening", "night"]},
				"poolType": {"type": "string", "enum": ["", "none", "unheated", "heated"]},
				"homeOfficeCount": {"type": "integer", "minimum": 0}
			}
		},
		"roof": {
			"type": "object",
			"properties": {
				"maxPanelCount": {"type": "integer", "minimum": 0},
				"usableAreaSqm": {"type": "number", "minimum": 0},
				"annualSunshineHours": {"type": "number", "minimum": 0}
			}
		},
		"equipment": {
			"type": "object",
			"required": ["panelProductId", "panelCount", "inverterProductId"],
			"properties": {
				"panelProductId": {"type": "string", "minLength": 1},
				"panelCount": {"type": "integer", "minimum": 1},
				"inverterProductId": {"type": "string", "minLength": 1},
				"batteryProductId": {"type": "string"}
			}
		},
		"site": {
			"type": "object",
			"properties": {
				"roofType": {"type": "string", "enum": ["", "tile", "metal", "flat"]},
				"storeys": {"type": "integer", "minimum": 0},
				"difficultAccess": {"type": "boolean"},
				"requiresScaffolding": {"type": "boolean"},
				"hasAsbestos": {"type": "boolean"}
			}
		},
		"addons": {
			"type": "object",
			"properties": {
				"addonIds": {
					"type": "array",
					"items": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

// The create request is the calculation input plus a contact block, which
// the input schema tolerates as an extra property.
var quoteInputSchema = validation.MustCompile(quoteInputSchemaJSON)
