package web

// getHTMLTemplate returns the chat page template.
func getHTMLTemplate() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Boris Chat Pro</title>
    <link rel="stylesheet" href="/static/style.css">
</head>
<body>
    <div class="container">
        <aside class="sidebar">
            <h2>⚙️ Configuration</h2>
            {{if .EnvConfigured}}
            <div class="status success">✅ API Key loaded from environment variable</div>
            {{else}}
            <div class="status info">💡 API key not found in environment variables</div>
            <div class="key-form">
                <input type="password" id="api-key-input" placeholder="Enter your Gemini API Key">
                <button onclick="configureKey()" class="btn">Configure</button>
            </div>
            {{end}}
            <div id="config-status"></div>

            <hr>

            <h2>💬 Chat Controls</h2>
            <button onclick="clearChat()" class="btn danger">🗑️ Clear Chat History</button>
            <div class="status info">Messages in chat: <span id="message-count">0</span></div>

            <hr>

            <h2>📖 Instructions</h2>
            <ol class="instructions">
                <li>Set <code>GEMINI_API_KEY</code>, or enter your key above</li>
                <li>Start chatting with the AI assistant</li>
                <li>Use the clear button to reset the conversation</li>
                <li>The AI remembers the conversation context</li>
            </ol>
            <div class="model-note">Model: {{.Model}}</div>
        </aside>

        <main class="content">
            <h1 class="main-header">🤖 Boris Chat Pro</h1>
            <div id="chat-container" class="chat-container">
                <div class="empty-state">👋 Start a conversation by typing a message below!</div>
            </div>
            <div class="input-row">
                <input type="text" id="user-input" placeholder="Ask me anything..." autocomplete="off">
                <button id="send-btn" onclick="sendMessage()" class="btn primary">Send 📤</button>
            </div>
        </main>
    </div>

    <script src="/static/script.js"></script>
    <script>
        initializeChat({{.Configured}});
    </script>
</body>
</html>`
}

// getCSS returns the page styles.
func getCSS() string {
	return `
* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: 'Segoe UI', Arial, sans-serif;
    background-color: #0e0e0e;
    color: #e0e0e0;
    line-height: 1.6;
}

.container {
    display: flex;
    min-height: 100vh;
}

.sidebar {
    width: 320px;
    background: #1a1a1a;
    border-right: 2px solid #333;
    padding: 1.5rem;
}

.sidebar h2 {
    color: #1f77b4;
    font-size: 1rem;
    margin-bottom: 1rem;
}

.sidebar hr {
    border: none;
    border-top: 1px solid #333;
    margin: 1.5rem 0;
}

.status {
    padding: 0.5rem 0.75rem;
    border-radius: 6px;
    margin-bottom: 0.75rem;
    font-size: 0.9rem;
}

.status.success {
    background: #1b3b1b;
    color: #4CAF50;
}

.status.info {
    background: #1b2b3b;
    color: #64b5f6;
}

.status.error {
    background: #3b1b1b;
    color: #ef5350;
}

.key-form input {
    width: 100%;
    padding: 0.5rem;
    margin-bottom: 0.5rem;
    border-radius: 6px;
    background: #2c2c2c;
    color: white;
    border: 1px solid #444;
}

.instructions {
    font-size: 0.85rem;
    color: #ccc;
    padding-left: 1.2rem;
}

.model-note {
    margin-top: 1rem;
    font-size: 0.85rem;
    color: #888;
}

.btn {
    padding: 0.5rem 1rem;
    border: none;
    border-radius: 6px;
    background: #1f77b4;
    color: white;
    cursor: pointer;
}

.btn:hover {
    background: #1565c0;
}

.btn:disabled {
    background: #555;
    cursor: not-allowed;
}

.btn.danger {
    background: #b43a1f;
    margin-bottom: 0.75rem;
}

.btn.danger:hover {
    background: #8f2e18;
}

.content {
    flex: 1;
    display: flex;
    flex-direction: column;
    padding: 1.5rem 2rem;
    max-width: 900px;
    margin: 0 auto;
}

.main-header {
    text-align: center;
    color: #1f77b4;
    margin-bottom: 1.5rem;
}

.chat-container {
    flex: 1;
    max-height: 65vh;
    overflow-y: auto;
    padding: 1rem;
    background-color: #161616;
    border-radius: 10px;
    margin-bottom: 1rem;
}

.empty-state {
    text-align: center;
    color: #888;
    padding: 2rem;
}

.chat-message {
    padding: 1rem;
    border-radius: 15px;
    margin-bottom: 1rem;
    border-left: 4px solid;
    max-width: 80%;
    white-space: pre-wrap;
    word-wrap: break-word;
}

.chat-message .sender {
    font-weight: bold;
    display: block;
    margin-bottom: 0.25rem;
}

.user-message {
    background-color: #2c2c2c;
    border-left-color: #4CAF50;
    margin-left: 20%;
}

.assistant-message {
    background-color: #1a1a1a;
    border-left-color: #2196F3;
    margin-right: 20%;
}

.thinking {
    color: #888;
    font-style: italic;
}

.input-row {
    display: flex;
    gap: 0.75rem;
}

.input-row input {
    flex: 1;
    padding: 0.75rem 1rem;
    border-radius: 20px;
    background-color: #2c2c2c;
    color: white;
    border: 1px solid #444;
}

@media (max-width: 768px) {
    .container {
        flex-direction: column;
    }

    .sidebar {
        width: 100%;
        order: 2;
    }

    .content {
        order: 1;
    }
}
`
}

// getJS returns the client-side chat logic.
func getJS() string {
	return `
let configured = false;

function initializeChat(isConfigured) {
    configured = isConfigured;
    loadHistory();

    document.getElementById('user-input').addEventListener('keydown', (e) => {
        if (e.key === 'Enter') {
            sendMessage();
        }
    });
}

function loadHistory() {
    fetch('/api/history')
        .then(response => response.json())
        .then(data => {
            configured = data.configured;
            renderMessages(data.messages || []);
            updateCount(data.count);
        })
        .catch(error => console.error('Error loading history:', error));
}

function renderMessages(messages) {
    const container = document.getElementById('chat-container');
    container.innerHTML = '';

    if (messages.length === 0) {
        const empty = document.createElement('div');
        empty.className = 'empty-state';
        empty.textContent = '👋 Start a conversation by typing a message below!';
        container.appendChild(empty);
        return;
    }

    for (const msg of messages) {
        appendBubble(msg.role, msg.content);
    }
    container.scrollTop = container.scrollHeight;
}

// textContent keeps message content inert regardless of what the model
// or the user typed.
function appendBubble(role, content) {
    const container = document.getElementById('chat-container');
    const empty = container.querySelector('.empty-state');
    if (empty) {
        empty.remove();
    }

    const bubble = document.createElement('div');
    bubble.className = 'chat-message ' + (role === 'user' ? 'user-message' : 'assistant-message');

    const sender = document.createElement('span');
    sender.className = 'sender';
    sender.textContent = role === 'user' ? 'You:' : 'Gemini:';
    bubble.appendChild(sender);

    const body = document.createElement('div');
    body.textContent = content;
    bubble.appendChild(body);

    container.appendChild(bubble);
    container.scrollTop = container.scrollHeight;
    return bubble;
}

function updateCount(count) {
    document.getElementById('message-count').textContent = count;
}

function sendMessage() {
    const input = document.getElementById('user-input');
    const message = input.value;
    if (!message.trim()) {
        return;
    }
    if (!configured) {
        showConfigStatus('Please configure an API key first.', true);
        return;
    }

    const sendBtn = document.getElementById('send-btn');
    sendBtn.disabled = true;
    input.value = '';

    appendBubble('user', message);
    const thinking = appendBubble('assistant', '🤔 Gemini is thinking...');
    thinking.classList.add('thinking');

    fetch('/api/send', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ message: message })
    })
    .then(response => response.json().then(data => ({ ok: response.ok, data })))
    .then(({ ok, data }) => {
        thinking.remove();
        if (!ok) {
            throw new Error(data.error || 'Request failed');
        }
        appendBubble('assistant', data.reply);
        updateCount(data.count);
    })
    .catch(error => {
        thinking.remove();
        appendBubble('assistant', 'Error getting response: ' + error.message);
    })
    .finally(() => {
        sendBtn.disabled = false;
        input.focus();
    });
}

function clearChat() {
    fetch('/api/clear', { method: 'POST' })
        .then(response => response.json())
        .then(data => {
            renderMessages([]);
            updateCount(data.count);
        })
        .catch(error => console.error('Error clearing chat:', error));
}

function configureKey() {
    const input = document.getElementById('api-key-input');

    fetch('/api/configure', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ api_key: input.value })
    })
    .then(response => response.json())
    .then(data => {
        if (data.success) {
            configured = true;
            showConfigStatus('✅ API Key configured successfully!', false);
        } else {
            showConfigStatus('❌ ' + (data.error || 'Failed to configure API Key'), true);
        }
    })
    .catch(error => showConfigStatus('❌ ' + error.message, true));
}

function showConfigStatus(text, isError) {
    const el = document.getElementById('config-status');
    el.innerHTML = '';
    const status = document.createElement('div');
    status.className = 'status ' + (isError ? 'error' : 'success');
    status.textContent = text;
    el.appendChild(status);
}
`
}
