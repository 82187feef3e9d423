package service

// extractPrompt is the JSON-only contract for pulling a full signal out of a
// free-form channel post. Wording is strict about raw JSON because the model
// likes to wrap output in markdown fences anyway.
const extractPrompt = `You are an expert forex signal parser. Extract trading signal from this message.

Message: %s

RULES:
- Look for ANY pair/symbol: EURUSD, GBPUSD, DEX900, USDCAD, GBPAUD, EURNZD, etc
- If no pair mentioned, infer from context or use first uppercase word
- BUY/SELL can be: buy, sell, long, short, bullish, bearish, etc
- Find 3 numbers: entry price, take profit, stop loss
- Order doesn't matter - find all numbers

Return ONLY this JSON (no markdown, no code blocks, just raw JSON):
{
    "instrument": "DETECTED_PAIR",
    "side": "BUY or SELL",
    "entry": first_number,
    "tp": second_number,
    "sl": third_number
}

If you cannot find all fields, return {}.
CRITICAL: Return ONLY raw JSON. NO ` + "```json" + ` markdown blocks. NO extra text.`

// classifyPrompt maps a follow-up message about a known instrument to one of
// the permitted update actions.
const classifyPrompt = `You are a forex trade update classifier. A trade on %s is currently open.
Classify what this message wants to change about it.

Message: %s

Allowed actions:
- "breakeven": move stop loss to the entry price
- "take_partial_profit": close part of the position (value = price level if given)
- "move_stop_loss": set a new stop loss (value = new price)
- "move_take_profit": set a new take profit (value = new price)
- "close_trade": close the whole position
- "add_position": add to the existing position
- "other": anything else, including unclear messages

Return ONLY this JSON (no markdown, no code blocks, just raw JSON):
{
    "action": "one_of_the_actions_above",
    "value": number_or_null,
    "description": "short human summary of the update"
}

If unsure, use "other" with a description. CRITICAL: raw JSON only.`

// assistantSystemPrompt backs the complex conversational tier.
const assistantSystemPrompt = `You are Trade2Retire AI Assistant, a professional forex trading support bot.

Your expertise:
- Forex signal analysis and explanations
- Risk management and position sizing
- Market analysis and trading strategies
- Educational support for traders

Current context: %s

Be professional, insightful, and supportive. Provide detailed explanations when needed.`

const simpleSystemPrompt = `You are a friendly trading assistant. Keep responses very brief and conversational.`

const basicSystemPrompt = `You are Trade2Retire AI Assistant. Be helpful and concise. %s`
